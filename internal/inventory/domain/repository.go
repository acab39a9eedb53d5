package domain

import (
	"context"
	"errors"
)

// Store-level errors
var (
	// ErrStaleSnapshot means the store moved past the version the caller
	// resolved against. The caller may retry with a fresh snapshot.
	ErrStaleSnapshot = errors.New("snapshot is stale")

	// ErrInsufficientStock guards the quantity floor inside the apply
	// transaction, independent of pipeline-level validation.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrNotFound       = errors.New("record not found")
	ErrDuplicateName  = errors.New("name already in use")
	ErrPositionTaken  = errors.New("shelf position already taken")
	ErrNotOwned       = errors.New("record does not belong to user")
	ErrShelfNotInSnap = errors.New("shelf not present in store")
)

// InventoryRepository defines the contract for inventory data access. Every
// operation is scoped to exactly one user.
type InventoryRepository interface {
	// LoadSnapshot returns the user's full container/shelf/item graph with
	// the current version token. Never cached across commands.
	LoadSnapshot(ctx context.Context, userID string) (*InventorySnapshot, error)

	// ApplyMutation commits one mutation atomically. It fails with
	// ErrStaleSnapshot when the store version no longer equals
	// expectedVersion.
	ApplyMutation(ctx context.Context, userID string, m *Mutation, expectedVersion int64) (*MutationResult, error)

	// Manual CRUD surface
	CreateContainer(ctx context.Context, container *Container) error
	FindContainerByID(ctx context.Context, userID string, id uint) (*Container, error)
	ListContainers(ctx context.Context, userID string) ([]Container, error)
	DeleteContainer(ctx context.Context, userID string, id uint) error

	CreateShelf(ctx context.Context, userID string, shelf *Shelf) error
	DeleteShelf(ctx context.Context, userID string, id uint) error

	UpsertItem(ctx context.Context, userID string, shelfID uint, item *Item) error
	DeleteItem(ctx context.Context, userID string, id uint) error
}
