package query

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// GetContainerQuery represents the query to get one container
type GetContainerQuery struct {
	UserID string
	ID     uint
}

// GetContainerHandler handles get container query
type GetContainerHandler struct {
	repo domain.InventoryRepository
}

// NewGetContainerHandler creates a new get container handler
func NewGetContainerHandler(repo domain.InventoryRepository) *GetContainerHandler {
	return &GetContainerHandler{repo: repo}
}

// Handle executes the get container query
func (h *GetContainerHandler) Handle(ctx context.Context, q GetContainerQuery) (*domain.Container, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	container, err := h.repo.FindContainerByID(ctx, q.UserID, q.ID)
	if err != nil {
		return nil, fmt.Errorf("container not found: %w", err)
	}

	return container, nil
}
