package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/pmusial/spizarka/internal/inventory/domain"
	"github.com/pmusial/spizarka/internal/inventory/repository"
)

// ProvideInventoryRepository provides the inventory repository with tracing
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewGormInventoryRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
)
