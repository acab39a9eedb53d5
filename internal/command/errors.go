package command

import (
	"fmt"
	"strings"
)

// Every pipeline stage returns one specific error kind from this taxonomy.
// All of them are terminal for the current command; only
// ConcurrentModificationError is worth retrying, with a fresh snapshot.

// EmptyUtteranceError means normalization left zero tokens
type EmptyUtteranceError struct {
	Utterance string
}

func (e *EmptyUtteranceError) Error() string {
	return "empty command"
}

// UnknownIntentError means no trigger keyword matched any token
type UnknownIntentError struct {
	Utterance string
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("could not understand %q: no known action word found", e.Utterance)
}

// Candidate is one possible target of an ambiguous reference
type Candidate struct {
	ContainerName string `json:"container_name"`
	ShelfName     string `json:"shelf_name"`
	ShelfID       uint   `json:"shelf_id"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s / %s", c.ContainerName, c.ShelfName)
}

// AmbiguousReferenceError means a phrase matched more than one entity and
// no further context narrowed it down. The command is never applied against
// a guess; the caller shows the candidates and asks the user to pick.
type AmbiguousReferenceError struct {
	Phrase     string      `json:"phrase"`
	Candidates []Candidate `json:"candidates"`
}

func (e *AmbiguousReferenceError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return fmt.Sprintf("%q matches more than one place: %s", e.Phrase, strings.Join(names, ", "))
}

// UnresolvedReferenceError means a phrase matched nothing in the inventory
type UnresolvedReferenceError struct {
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("could not find %q: %s", e.Phrase, e.Reason)
}

// ItemNotFoundError means the named item does not exist where the command
// needs it to
type ItemNotFoundError struct {
	Name      string `json:"name"`
	ShelfName string `json:"shelf_name,omitempty"`
}

func (e *ItemNotFoundError) Error() string {
	if e.ShelfName != "" {
		return fmt.Sprintf("no item %q on shelf %q", e.Name, e.ShelfName)
	}
	return fmt.Sprintf("no item %q anywhere in the inventory", e.Name)
}

// MissingArgumentError means the command lacks a required argument or an
// argument failed validation
type MissingArgumentError struct {
	Action   Action `json:"action"`
	Argument string `json:"argument"`
	Reason   string `json:"reason"`
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s command: %s %s", e.Action, e.Argument, e.Reason)
}

// InsufficientQuantityError means a REMOVE or MOVE asked for more than is
// present. Quantities are never clamped.
type InsufficientQuantityError struct {
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("only %d of %q available, cannot take %d", e.Available, e.Name, e.Requested)
}

// ConcurrentModificationError means the inventory changed between snapshot
// load and apply. The caller may re-run the command from a fresh snapshot.
type ConcurrentModificationError struct{}

func (e *ConcurrentModificationError) Error() string {
	return "inventory changed while processing the command, please retry"
}
