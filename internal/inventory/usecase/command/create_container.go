package command

import (
	"context"
	"fmt"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// CreateContainerCommand represents the command to create a container
type CreateContainerCommand struct {
	UserID string
	Name   string
	Kind   string
}

// CreateContainerHandler handles create container command
type CreateContainerHandler struct {
	repo domain.InventoryRepository
}

// NewCreateContainerHandler creates a new create container handler
func NewCreateContainerHandler(repo domain.InventoryRepository) *CreateContainerHandler {
	return &CreateContainerHandler{repo: repo}
}

// Handle executes the create container command
func (h *CreateContainerHandler) Handle(ctx context.Context, cmd CreateContainerCommand) (*domain.Container, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Kind == "" {
		cmd.Kind = domain.KindFridge
	}
	if cmd.Kind != domain.KindFridge && cmd.Kind != domain.KindFreezer {
		return nil, fmt.Errorf("kind must be %q or %q", domain.KindFridge, domain.KindFreezer)
	}

	container := &domain.Container{
		UserID: cmd.UserID,
		Name:   cmd.Name,
		Kind:   cmd.Kind,
	}

	if err := h.repo.CreateContainer(ctx, container); err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return container, nil
}
