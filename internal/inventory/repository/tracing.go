package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormInventoryRepositoryWithTracing wraps GormInventoryRepository with
// tracing around the two pipeline-critical operations.
type GormInventoryRepositoryWithTracing struct {
	*GormInventoryRepository
}

// NewGormInventoryRepositoryWithTracing creates a new repository with tracing
func NewGormInventoryRepositoryWithTracing(db *gorm.DB) *GormInventoryRepositoryWithTracing {
	return &GormInventoryRepositoryWithTracing{
		GormInventoryRepository: NewGormInventoryRepository(db),
	}
}

// LoadSnapshot with tracing
func (r *GormInventoryRepositoryWithTracing) LoadSnapshot(ctx context.Context, userID string) (*domain.InventorySnapshot, error) {
	ctx, span := tracer.Start(ctx, "repository.LoadSnapshot",
		trace.WithAttributes(
			attribute.String("inventory.user_id", userID),
		),
	)
	defer span.End()

	snapshot, err := r.GormInventoryRepository.LoadSnapshot(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("snapshot.version", snapshot.Version),
		attribute.Int("snapshot.containers", len(snapshot.Containers)),
	)
	return snapshot, nil
}

// ApplyMutation with tracing
func (r *GormInventoryRepositoryWithTracing) ApplyMutation(ctx context.Context, userID string, m *domain.Mutation, expectedVersion int64) (*domain.MutationResult, error) {
	ctx, span := tracer.Start(ctx, "repository.ApplyMutation",
		trace.WithAttributes(
			attribute.String("inventory.user_id", userID),
			attribute.String("mutation.kind", m.Kind),
			attribute.String("mutation.item", m.ItemName),
			attribute.Int("mutation.quantity", m.Quantity),
			attribute.Int64("mutation.expected_version", expectedVersion),
		),
	)
	defer span.End()

	result, err := r.GormInventoryRepository.ApplyMutation(ctx, userID, m, expectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("result.quantity", result.Quantity),
		attribute.Int64("result.new_version", result.NewVersion),
	)
	return result, nil
}
