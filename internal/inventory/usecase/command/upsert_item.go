package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// UpsertItemCommand represents the command to create or overwrite an item
// on a shelf
type UpsertItemCommand struct {
	UserID   string
	ShelfID  uint
	Name     string
	Quantity int
	Unit     string
}

// UpsertItemHandler handles upsert item command
type UpsertItemHandler struct {
	repo domain.InventoryRepository
}

// NewUpsertItemHandler creates a new upsert item handler
func NewUpsertItemHandler(repo domain.InventoryRepository) *UpsertItemHandler {
	return &UpsertItemHandler{repo: repo}
}

// Handle executes the upsert item command
func (h *UpsertItemHandler) Handle(ctx context.Context, cmd UpsertItemCommand) (*domain.Item, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.ShelfID == 0 {
		return nil, fmt.Errorf("shelf_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	item := &domain.Item{
		Name:     cmd.Name,
		Quantity: cmd.Quantity,
		Unit:     cmd.Unit,
	}

	if err := h.repo.UpsertItem(ctx, cmd.UserID, cmd.ShelfID, item); err != nil {
		return nil, fmt.Errorf("failed to upsert item: %w", err)
	}

	return item, nil
}
