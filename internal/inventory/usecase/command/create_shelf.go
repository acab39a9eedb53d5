package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// CreateShelfCommand represents the command to create a shelf
type CreateShelfCommand struct {
	UserID      string
	ContainerID uint
	Name        string
	Position    int
}

// CreateShelfHandler handles create shelf command
type CreateShelfHandler struct {
	repo domain.InventoryRepository
}

// NewCreateShelfHandler creates a new create shelf handler
func NewCreateShelfHandler(repo domain.InventoryRepository) *CreateShelfHandler {
	return &CreateShelfHandler{repo: repo}
}

// Handle executes the create shelf command. Position 0 means "append after
// the highest existing position", matching the dashboard's default.
func (h *CreateShelfHandler) Handle(ctx context.Context, cmd CreateShelfCommand) (*domain.Shelf, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.ContainerID == 0 {
		return nil, fmt.Errorf("container_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Position < 0 {
		return nil, fmt.Errorf("position cannot be negative")
	}

	if cmd.Position == 0 {
		container, err := h.repo.FindContainerByID(ctx, cmd.UserID, cmd.ContainerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load container: %w", err)
		}
		max := 0
		for _, shelf := range container.Shelves {
			if shelf.Position > max {
				max = shelf.Position
			}
		}
		cmd.Position = max + 1
	}

	shelf := &domain.Shelf{
		ContainerID: cmd.ContainerID,
		Name:        cmd.Name,
		Position:    cmd.Position,
	}

	if err := h.repo.CreateShelf(ctx, cmd.UserID, shelf); err != nil {
		return nil, fmt.Errorf("failed to create shelf: %w", err)
	}

	return shelf, nil
}
