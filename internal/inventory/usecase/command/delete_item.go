package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// DeleteItemCommand represents the command to delete an item
type DeleteItemCommand struct {
	UserID string
	ID     uint
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo domain.InventoryRepository
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.InventoryRepository) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo}
}

// Handle executes the delete item command
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if err := h.repo.DeleteItem(ctx, cmd.UserID, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}
