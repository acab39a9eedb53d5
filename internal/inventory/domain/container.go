package domain

import (
	"time"

	"gorm.io/gorm"
)

// Container kinds
const (
	KindFreezer = "freezer"
	KindFridge  = "fridge"
)

// Container represents a freezer or fridge owned by one user
type Container struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"not null;index;uniqueIndex:idx_container_user_name,priority:1"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex:idx_container_user_name,priority:2"`
	Kind      string         `json:"kind" gorm:"not null;default:'fridge'"`
	Shelves   []Shelf        `json:"shelves" gorm:"foreignKey:ContainerID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Container) TableName() string {
	return "containers"
}

// Shelf is a slot inside a container. Position is 1-based and defines the
// top-to-bottom order used when a command says "first shelf".
type Shelf struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ContainerID uint           `json:"container_id" gorm:"not null;index;uniqueIndex:idx_shelf_container_pos,priority:1"`
	Name        string         `json:"name" gorm:"not null"`
	Position    int            `json:"position" gorm:"not null;uniqueIndex:idx_shelf_container_pos,priority:2"`
	Items       []Item         `json:"items" gorm:"foreignKey:ShelfID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Shelf) TableName() string {
	return "shelves"
}

// Item is a stored product on one shelf. Name keeps the user's original
// spelling; matching is done case and diacritic insensitively.
type Item struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ShelfID   uint           `json:"shelf_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	Quantity  int            `json:"quantity" gorm:"not null;default:0"`
	Unit      string         `json:"unit" gorm:"default:''"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}
