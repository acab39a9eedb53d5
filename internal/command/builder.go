package command

import (
	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// ParsedCommand is the fully resolved, validated form of one utterance.
// It is built, applied and discarded within a single request.
type ParsedCommand struct {
	Action        Action
	ItemName      string
	Unit          string
	Quantity      int
	SourceShelfID uint
	TargetShelfID uint

	SourceShelfName string
	TargetShelfName string
	ContainerName   string

	Existing *domain.Item // resolved pre-existing item, nil when ADD creates
}

// Mutation converts the command into the store-level mutation. QUERY never
// produces one.
func (c *ParsedCommand) Mutation() *domain.Mutation {
	switch c.Action {
	case ActionAdd:
		return &domain.Mutation{
			Kind:          domain.MutationAdd,
			ItemName:      c.ItemName,
			Unit:          c.Unit,
			Quantity:      c.Quantity,
			TargetShelfID: c.TargetShelfID,
		}
	case ActionRemove:
		return &domain.Mutation{
			Kind:          domain.MutationRemove,
			ItemName:      c.ItemName,
			Quantity:      c.Quantity,
			SourceShelfID: c.SourceShelfID,
		}
	case ActionMove:
		return &domain.Mutation{
			Kind:          domain.MutationMove,
			ItemName:      c.ItemName,
			Unit:          c.Unit,
			Quantity:      c.Quantity,
			SourceShelfID: c.SourceShelfID,
			TargetShelfID: c.TargetShelfID,
		}
	default:
		return nil
	}
}

// BuildCommand assembles and validates the command. Every invariant is
// enforced here, before any mutation is attempted: positive quantities, an
// explicit quantity for MOVE, existing and distinct shelves, and no REMOVE
// or MOVE beyond the available stock (quantities are rejected, not
// clamped).
func BuildCommand(res *Resolution) (*ParsedCommand, error) {
	if res.ItemText == "" && res.Item == nil {
		return nil, &MissingArgumentError{Action: res.Action, Argument: "item name", Reason: "is required"}
	}
	if res.Quantity <= 0 {
		return nil, &MissingArgumentError{Action: res.Action, Argument: "quantity", Reason: "must be positive"}
	}

	cmd := &ParsedCommand{
		Action:   res.Action,
		ItemName: res.ItemText,
		Unit:     res.Unit,
		Quantity: res.Quantity,
		Existing: res.Item,
	}
	if res.Item != nil {
		cmd.ItemName = res.Item.Name
		if res.Unit == "" {
			cmd.Unit = res.Item.Unit
		}
	}
	if res.Container != nil {
		cmd.ContainerName = res.Container.Name
	}

	source := res.Source
	if source == nil && res.ItemShelf != nil {
		source = &ShelfResolution{State: RefResolved, Phrase: res.ItemShelf.Shelf.Name, Ref: res.ItemShelf}
	}

	switch res.Action {
	case ActionAdd:
		if res.Target == nil || res.Target.State != RefResolved {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "target shelf", Reason: "could not be determined"}
		}
		cmd.TargetShelfID = res.Target.Ref.Shelf.ID
		cmd.TargetShelfName = res.Target.Ref.Shelf.Name
		if cmd.ContainerName == "" {
			cmd.ContainerName = res.Target.Ref.Container.Name
		}

	case ActionRemove:
		if source == nil || source.State != RefResolved {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "source shelf", Reason: "could not be determined"}
		}
		if res.Item == nil {
			return nil, &ItemNotFoundError{Name: res.ItemText, ShelfName: source.Ref.Shelf.Name}
		}
		if res.Quantity > res.Item.Quantity {
			return nil, &InsufficientQuantityError{
				Name:      res.Item.Name,
				Requested: res.Quantity,
				Available: res.Item.Quantity,
			}
		}
		cmd.SourceShelfID = source.Ref.Shelf.ID
		cmd.SourceShelfName = source.Ref.Shelf.Name
		if cmd.ContainerName == "" {
			cmd.ContainerName = source.Ref.Container.Name
		}

	case ActionMove:
		if !res.QuantityGiven {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "quantity", Reason: "must be stated explicitly"}
		}
		if source == nil || source.State != RefResolved {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "source shelf", Reason: "could not be determined"}
		}
		if res.Target == nil || res.Target.State != RefResolved {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "target shelf", Reason: "could not be determined"}
		}
		if source.Ref.Shelf.ID == res.Target.Ref.Shelf.ID {
			return nil, &MissingArgumentError{Action: res.Action, Argument: "target shelf", Reason: "must differ from the source shelf"}
		}
		if res.Item == nil {
			return nil, &ItemNotFoundError{Name: res.ItemText, ShelfName: source.Ref.Shelf.Name}
		}
		if res.Quantity > res.Item.Quantity {
			return nil, &InsufficientQuantityError{
				Name:      res.Item.Name,
				Requested: res.Quantity,
				Available: res.Item.Quantity,
			}
		}
		cmd.SourceShelfID = source.Ref.Shelf.ID
		cmd.SourceShelfName = source.Ref.Shelf.Name
		cmd.TargetShelfID = res.Target.Ref.Shelf.ID
		cmd.TargetShelfName = res.Target.Ref.Shelf.Name

	case ActionQuery:
		if res.Item == nil {
			return nil, &ItemNotFoundError{Name: res.ItemText}
		}
		if source != nil && source.State == RefResolved {
			cmd.SourceShelfID = source.Ref.Shelf.ID
			cmd.SourceShelfName = source.Ref.Shelf.Name
			if cmd.ContainerName == "" {
				cmd.ContainerName = source.Ref.Container.Name
			}
		}
	}

	return cmd, nil
}
