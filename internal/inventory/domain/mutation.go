package domain

// Mutation kinds
const (
	MutationAdd    = "add"
	MutationRemove = "remove"
	MutationMove   = "move"
)

// Mutation is one validated, fully resolved state change to apply
// atomically. Shelf IDs reference shelves that existed in the snapshot the
// command was resolved against.
type Mutation struct {
	Kind          string
	ItemName      string
	Unit          string
	Quantity      int
	SourceShelfID uint // REMOVE and MOVE
	TargetShelfID uint // ADD and MOVE
}

// MutationResult describes the state after a mutation was committed,
// suitable for a one-line confirmation message.
type MutationResult struct {
	Kind        string `json:"kind"`
	ItemID      uint   `json:"item_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"` // quantity on the target shelf after apply
	ShelfID     uint   `json:"shelf_id"`
	ContainerID uint   `json:"container_id"`
	Created     bool   `json:"created"` // ADD created a new item row
	Deleted     bool   `json:"deleted"` // REMOVE/MOVE emptied the source row
	NewVersion  int64  `json:"new_version"`
}
