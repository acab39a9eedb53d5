package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
	"github.com/pmusial/spizarka/kafka"
	"github.com/pmusial/spizarka/pkg/logger"
)

// InventoryStore is the slice of the repository the pipeline needs
type InventoryStore interface {
	LoadSnapshot(ctx context.Context, userID string) (*domain.InventorySnapshot, error)
	ApplyMutation(ctx context.Context, userID string, m *domain.Mutation, expectedVersion int64) (*domain.MutationResult, error)
}

// EventPublisher emits applied-command events. Optional.
type EventPublisher interface {
	PublishCommandApplied(ctx context.Context, event kafka.CommandAppliedEvent) error
}

// Result describes the outcome of one successfully processed command
type Result struct {
	Action        string `json:"action"`
	Message       string `json:"message"`
	ItemID        uint   `json:"item_id,omitempty"`
	ItemName      string `json:"item_name"`
	Quantity      int    `json:"quantity"`
	Unit          string `json:"unit,omitempty"`
	ShelfName     string `json:"shelf_name,omitempty"`
	ContainerName string `json:"container_name,omitempty"`
	Created       bool   `json:"created,omitempty"`
	Deleted       bool   `json:"deleted,omitempty"`
	Version       int64  `json:"version"`
}

// Processor drives one utterance through tokenize, classify, resolve,
// build and apply. Each stage short-circuits with its typed error; the
// first error is returned to the caller unwrapped, and no stage guesses
// past an unresolved ambiguity.
type Processor struct {
	store     InventoryStore
	lex       *Lexicon
	publisher EventPublisher
}

func NewProcessor(store InventoryStore, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store: store,
		lex:   DefaultLexicon(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type ProcessorOption func(*Processor)

// WithLexicon replaces the default locale tables
func WithLexicon(lex *Lexicon) ProcessorOption {
	return func(p *Processor) { p.lex = lex }
}

// WithPublisher enables applied-command events
func WithPublisher(pub EventPublisher) ProcessorOption {
	return func(p *Processor) { p.publisher = pub }
}

// Process runs one command for one user. The snapshot is loaded fresh and
// its version is threaded through to the apply, so a concurrent
// modification surfaces as ConcurrentModificationError instead of a
// silently corrupted quantity.
func (p *Processor) Process(ctx context.Context, userID, text string) (*Result, error) {
	tokens, err := Tokenize(text, p.lex)
	if err != nil {
		return nil, err
	}

	action, span, err := Classify(tokens, p.lex, text)
	if err != nil {
		return nil, err
	}

	snapshot, err := p.store.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	resolution, err := NewResolver(snapshot, p.lex).Resolve(action, span)
	if err != nil {
		return nil, err
	}

	cmd, err := BuildCommand(resolution)
	if err != nil {
		return nil, err
	}

	if action == ActionQuery {
		return queryResult(cmd, snapshot), nil
	}

	applied, err := p.store.ApplyMutation(ctx, userID, cmd.Mutation(), snapshot.Version)
	if err != nil {
		return nil, mapStoreError(err, cmd)
	}

	result := appliedResult(cmd, applied)

	if p.publisher != nil {
		event := kafka.CommandAppliedEvent{
			UserID:      userID,
			Action:      cmd.Action.String(),
			ItemName:    applied.ItemName,
			Quantity:    cmd.Quantity,
			ShelfID:     applied.ShelfID,
			ContainerID: applied.ContainerID,
			Version:     applied.NewVersion,
		}
		if err := p.publisher.PublishCommandApplied(ctx, event); err != nil {
			// The mutation is already committed; a lost event must not
			// fail the command.
			logger.Warn(ctx).Err(err).Msg("Failed to publish command applied event")
		}
	}

	return result, nil
}

// mapStoreError translates store-level failures into the pipeline
// taxonomy. Races between resolution and apply show up here.
func mapStoreError(err error, cmd *ParsedCommand) error {
	switch {
	case errors.Is(err, domain.ErrStaleSnapshot):
		return &ConcurrentModificationError{}
	case errors.Is(err, domain.ErrInsufficientStock):
		available := 0
		if cmd.Existing != nil {
			available = cmd.Existing.Quantity
		}
		return &InsufficientQuantityError{Name: cmd.ItemName, Requested: cmd.Quantity, Available: available}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrShelfNotInSnap):
		return &ItemNotFoundError{Name: cmd.ItemName, ShelfName: cmd.SourceShelfName}
	default:
		return fmt.Errorf("apply mutation: %w", err)
	}
}

func appliedResult(cmd *ParsedCommand, applied *domain.MutationResult) *Result {
	result := &Result{
		Action:        cmd.Action.String(),
		ItemID:        applied.ItemID,
		ItemName:      applied.ItemName,
		Quantity:      applied.Quantity,
		Unit:          cmd.Unit,
		ContainerName: cmd.ContainerName,
		Created:       applied.Created,
		Deleted:       applied.Deleted,
		Version:       applied.NewVersion,
	}

	switch cmd.Action {
	case ActionAdd:
		result.ShelfName = cmd.TargetShelfName
		if applied.Created {
			result.Message = fmt.Sprintf("Added %d %s to %q (new item)", cmd.Quantity, applied.ItemName, cmd.TargetShelfName)
		} else {
			result.Message = fmt.Sprintf("Added %d %s to %q, now %d", cmd.Quantity, applied.ItemName, cmd.TargetShelfName, applied.Quantity)
		}
	case ActionRemove:
		result.ShelfName = cmd.SourceShelfName
		if applied.Deleted {
			result.Message = fmt.Sprintf("Removed the last %d %s from %q", cmd.Quantity, applied.ItemName, cmd.SourceShelfName)
		} else {
			result.Message = fmt.Sprintf("Removed %d %s from %q, %d left", cmd.Quantity, applied.ItemName, cmd.SourceShelfName, applied.Quantity)
		}
	case ActionMove:
		result.ShelfName = cmd.TargetShelfName
		result.Message = fmt.Sprintf("Moved %d %s from %q to %q", cmd.Quantity, applied.ItemName, cmd.SourceShelfName, cmd.TargetShelfName)
	}

	return result
}

// queryResult answers QUERY from the snapshot; it never touches the store
func queryResult(cmd *ParsedCommand, snapshot *domain.InventorySnapshot) *Result {
	item := cmd.Existing
	result := &Result{
		Action:        ActionQuery.String(),
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		ShelfName:     cmd.SourceShelfName,
		ContainerName: cmd.ContainerName,
		Version:       snapshot.Version,
	}
	where := cmd.SourceShelfName
	if where == "" {
		if ref := snapshot.ShelfByID(item.ShelfID); ref != nil {
			where = ref.Shelf.Name
			result.ShelfName = ref.Shelf.Name
			result.ContainerName = ref.Container.Name
		}
	}
	if item.Unit != "" {
		result.Message = fmt.Sprintf("%d %s of %s on %q", item.Quantity, item.Unit, item.Name, where)
	} else {
		result.Message = fmt.Sprintf("%d x %s on %q", item.Quantity, item.Name, where)
	}
	return result
}
