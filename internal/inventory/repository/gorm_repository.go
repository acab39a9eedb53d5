package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

// inventoryVersion is the per-user optimistic staleness token. Every write
// to the user's graph bumps it; ApplyMutation additionally requires it to
// still equal the version the snapshot was loaded at.
type inventoryVersion struct {
	UserID  string `gorm:"primaryKey"`
	Version int64  `gorm:"not null;default:0"`
}

func (inventoryVersion) TableName() string {
	return "inventory_versions"
}

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Container{},
		&domain.Shelf{},
		&domain.Item{},
		&inventoryVersion{},
	)
}

// LoadSnapshot returns the user's full inventory graph. Shelves come back
// ordered by position so ordinal references resolve without re-sorting.
func (r *GormInventoryRepository) LoadSnapshot(ctx context.Context, userID string) (*domain.InventorySnapshot, error) {
	var ver inventoryVersion
	err := r.db.WithContext(ctx).
		Where(inventoryVersion{UserID: userID}).
		Attrs(inventoryVersion{Version: 0}).
		FirstOrCreate(&ver).Error
	if err != nil {
		return nil, fmt.Errorf("load version: %w", err)
	}

	var containers []domain.Container
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Preload("Shelves", func(db *gorm.DB) *gorm.DB {
			return db.Order("shelves.position")
		}).
		Preload("Shelves.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("items.id")
		}).
		Find(&containers).Error
	if err != nil {
		return nil, fmt.Errorf("load containers: %w", err)
	}

	return &domain.InventorySnapshot{
		UserID:     userID,
		Version:    ver.Version,
		Containers: containers,
	}, nil
}

// bumpVersion increments the user's version inside tx. With expected >= 0
// the increment only succeeds if the stored version still matches; zero
// rows affected means a concurrent writer got there first.
func (r *GormInventoryRepository) bumpVersion(tx *gorm.DB, userID string, expected int64) (int64, error) {
	q := tx.Model(&inventoryVersion{}).Where("user_id = ?", userID)
	if expected >= 0 {
		q = q.Where("version = ?", expected)
	}

	res := q.Update("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("bump version: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if expected >= 0 {
			return 0, domain.ErrStaleSnapshot
		}
		// First write for this user; seed the row at version 1.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&inventoryVersion{UserID: userID, Version: 1}).Error; err != nil {
			return 0, fmt.Errorf("seed version: %w", err)
		}
		return 1, nil
	}

	var ver inventoryVersion
	if err := tx.Where("user_id = ?", userID).First(&ver).Error; err != nil {
		return 0, fmt.Errorf("read version: %w", err)
	}
	return ver.Version, nil
}

// shelfOwnedBy loads the shelf and verifies it belongs to one of the
// user's containers.
func (r *GormInventoryRepository) shelfOwnedBy(tx *gorm.DB, userID string, shelfID uint) (*domain.Shelf, error) {
	var shelf domain.Shelf
	err := tx.Joins("JOIN containers ON containers.id = shelves.container_id").
		Where("shelves.id = ? AND containers.user_id = ?", shelfID, userID).
		First(&shelf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrShelfNotInSnap
	}
	if err != nil {
		return nil, fmt.Errorf("load shelf: %w", err)
	}
	return &shelf, nil
}

// ApplyMutation commits one mutation as a single transaction. MOVE is a
// decrement on the source shelf and an increment on the target shelf in the
// same transaction; the item is never left on both shelves or neither.
func (r *GormInventoryRepository) ApplyMutation(ctx context.Context, userID string, m *domain.Mutation, expectedVersion int64) (*domain.MutationResult, error) {
	var result domain.MutationResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newVersion, err := r.bumpVersion(tx, userID, expectedVersion)
		if err != nil {
			return err
		}

		result.Kind = m.Kind
		result.NewVersion = newVersion

		switch m.Kind {
		case domain.MutationAdd:
			return r.applyAdd(tx, userID, m, &result)
		case domain.MutationRemove:
			return r.applyRemove(tx, userID, m, &result)
		case domain.MutationMove:
			var source domain.MutationResult
			if err := r.applyRemove(tx, userID, &domain.Mutation{
				Kind:          domain.MutationRemove,
				ItemName:      m.ItemName,
				Quantity:      m.Quantity,
				SourceShelfID: m.SourceShelfID,
			}, &source); err != nil {
				return err
			}
			if err := r.applyAdd(tx, userID, &domain.Mutation{
				Kind:          domain.MutationAdd,
				ItemName:      m.ItemName,
				Unit:          m.Unit,
				Quantity:      m.Quantity,
				TargetShelfID: m.TargetShelfID,
			}, &result); err != nil {
				return err
			}
			result.Deleted = source.Deleted
			return nil
		default:
			return fmt.Errorf("unknown mutation kind %q", m.Kind)
		}
	})
	if err != nil {
		return nil, err
	}

	result.Kind = m.Kind
	return &result, nil
}

func (r *GormInventoryRepository) applyAdd(tx *gorm.DB, userID string, m *domain.Mutation, result *domain.MutationResult) error {
	shelf, err := r.shelfOwnedBy(tx, userID, m.TargetShelfID)
	if err != nil {
		return err
	}

	var item domain.Item
	err = tx.Where("shelf_id = ? AND lower(name) = lower(?)", shelf.ID, m.ItemName).
		First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = domain.Item{
			ShelfID:  shelf.ID,
			Name:     m.ItemName,
			Quantity: m.Quantity,
			Unit:     m.Unit,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		result.Created = true
	case err != nil:
		return fmt.Errorf("find item: %w", err)
	default:
		item.Quantity += m.Quantity
		if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return fmt.Errorf("increment item: %w", err)
		}
	}

	result.ItemID = item.ID
	result.ItemName = item.Name
	result.Quantity = item.Quantity
	result.ShelfID = shelf.ID
	result.ContainerID = shelf.ContainerID
	return nil
}

func (r *GormInventoryRepository) applyRemove(tx *gorm.DB, userID string, m *domain.Mutation, result *domain.MutationResult) error {
	shelf, err := r.shelfOwnedBy(tx, userID, m.SourceShelfID)
	if err != nil {
		return err
	}

	var item domain.Item
	err = tx.Where("shelf_id = ? AND lower(name) = lower(?)", shelf.ID, m.ItemName).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find item: %w", err)
	}

	if item.Quantity < m.Quantity {
		return domain.ErrInsufficientStock
	}

	item.Quantity -= m.Quantity
	if item.Quantity == 0 {
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		result.Deleted = true
	} else {
		if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
			return fmt.Errorf("decrement item: %w", err)
		}
	}

	result.ItemID = item.ID
	result.ItemName = item.Name
	result.Quantity = item.Quantity
	result.ShelfID = shelf.ID
	result.ContainerID = shelf.ContainerID
	return nil
}

func (r *GormInventoryRepository) CreateContainer(ctx context.Context, container *domain.Container) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.Container{}).
			Where("user_id = ? AND lower(name) = lower(?)", container.UserID, container.Name).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check container name: %w", err)
		}
		if count > 0 {
			return domain.ErrDuplicateName
		}

		if err := tx.Create(container).Error; err != nil {
			return fmt.Errorf("create container: %w", err)
		}

		_, err = r.bumpVersion(tx, container.UserID, -1)
		return err
	})
}

func (r *GormInventoryRepository) FindContainerByID(ctx context.Context, userID string, id uint) (*domain.Container, error) {
	var container domain.Container
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Preload("Shelves", func(db *gorm.DB) *gorm.DB {
			return db.Order("shelves.position")
		}).
		Preload("Shelves.Items").
		First(&container).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &container, nil
}

func (r *GormInventoryRepository) ListContainers(ctx context.Context, userID string) ([]domain.Container, error) {
	var containers []domain.Container
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Preload("Shelves", func(db *gorm.DB) *gorm.DB {
			return db.Order("shelves.position")
		}).
		Preload("Shelves.Items").
		Find(&containers).Error
	return containers, err
}

func (r *GormInventoryRepository) DeleteContainer(ctx context.Context, userID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Container{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		_, err := r.bumpVersion(tx, userID, -1)
		return err
	})
}

func (r *GormInventoryRepository) CreateShelf(ctx context.Context, userID string, shelf *domain.Shelf) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var container domain.Container
		err := tx.Where("id = ? AND user_id = ?", shelf.ContainerID, userID).
			First(&container).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		var count int64
		err = tx.Model(&domain.Shelf{}).
			Where("container_id = ? AND position = ?", shelf.ContainerID, shelf.Position).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check shelf position: %w", err)
		}
		if count > 0 {
			return domain.ErrPositionTaken
		}

		if err := tx.Create(shelf).Error; err != nil {
			return fmt.Errorf("create shelf: %w", err)
		}

		_, err = r.bumpVersion(tx, userID, -1)
		return err
	})
}

func (r *GormInventoryRepository) DeleteShelf(ctx context.Context, userID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.shelfOwnedBy(tx, userID, id); err != nil {
			if errors.Is(err, domain.ErrShelfNotInSnap) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := tx.Delete(&domain.Shelf{}, id).Error; err != nil {
			return err
		}

		_, err := r.bumpVersion(tx, userID, -1)
		return err
	})
}

func (r *GormInventoryRepository) UpsertItem(ctx context.Context, userID string, shelfID uint, item *domain.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shelf, err := r.shelfOwnedBy(tx, userID, shelfID)
		if err != nil {
			if errors.Is(err, domain.ErrShelfNotInSnap) {
				return domain.ErrNotFound
			}
			return err
		}

		var existing domain.Item
		err = tx.Where("shelf_id = ? AND lower(name) = lower(?)", shelf.ID, item.Name).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item.ShelfID = shelf.ID
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("create item: %w", err)
			}
		case err != nil:
			return fmt.Errorf("find item: %w", err)
		default:
			existing.Quantity = item.Quantity
			existing.Unit = item.Unit
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("update item: %w", err)
			}
			*item = existing
		}

		_, err = r.bumpVersion(tx, userID, -1)
		return err
	})
}

func (r *GormInventoryRepository) DeleteItem(ctx context.Context, userID string, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item domain.Item
		err := tx.Joins("JOIN shelves ON shelves.id = items.shelf_id").
			Joins("JOIN containers ON containers.id = shelves.container_id").
			Where("items.id = ? AND containers.user_id = ?", id, userID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		_, err = r.bumpVersion(tx, userID, -1)
		return err
	})
}
