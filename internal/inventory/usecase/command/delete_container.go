package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// DeleteContainerCommand represents the command to delete a container
type DeleteContainerCommand struct {
	UserID string
	ID     uint
}

// DeleteContainerHandler handles delete container command
type DeleteContainerHandler struct {
	repo domain.InventoryRepository
}

// NewDeleteContainerHandler creates a new delete container handler
func NewDeleteContainerHandler(repo domain.InventoryRepository) *DeleteContainerHandler {
	return &DeleteContainerHandler{repo: repo}
}

// Handle executes the delete container command
func (h *DeleteContainerHandler) Handle(ctx context.Context, cmd DeleteContainerCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}

	if err := h.repo.DeleteContainer(ctx, cmd.UserID, cmd.ID); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}

	return nil
}
