package query

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// ListContainersQuery represents the query to list a user's containers
type ListContainersQuery struct {
	UserID string
}

// ListContainersHandler handles list containers query
type ListContainersHandler struct {
	repo domain.InventoryRepository
}

// NewListContainersHandler creates a new list containers handler
func NewListContainersHandler(repo domain.InventoryRepository) *ListContainersHandler {
	return &ListContainersHandler{repo: repo}
}

// Handle executes the list containers query
func (h *ListContainersHandler) Handle(ctx context.Context, q ListContainersQuery) ([]domain.Container, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	containers, err := h.repo.ListContainers(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	return containers, nil
}
