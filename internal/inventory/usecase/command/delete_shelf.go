package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// DeleteShelfCommand represents the command to delete a shelf
type DeleteShelfCommand struct {
	UserID string
	ID     uint
}

// DeleteShelfHandler handles delete shelf command
type DeleteShelfHandler struct {
	repo domain.InventoryRepository
}

// NewDeleteShelfHandler creates a new delete shelf handler
func NewDeleteShelfHandler(repo domain.InventoryRepository) *DeleteShelfHandler {
	return &DeleteShelfHandler{repo: repo}
}

// Handle executes the delete shelf command
func (h *DeleteShelfHandler) Handle(ctx context.Context, cmd DeleteShelfCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if err := h.repo.DeleteShelf(ctx, cmd.UserID, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete shelf: %w", err)
	}

	return nil
}
