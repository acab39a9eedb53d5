package domain

// InventorySnapshot is a read-only view of one user's full inventory graph,
// loaded fresh for every command. Version is the optimistic staleness token
// threaded from load to apply.
type InventorySnapshot struct {
	UserID     string      `json:"user_id"`
	Version    int64       `json:"version"`
	Containers []Container `json:"containers"`
}

// ShelfRef pairs a shelf with its owning container for display in
// disambiguation messages.
type ShelfRef struct {
	Container *Container
	Shelf     *Shelf
}

// ShelvesAtPosition returns every shelf whose position equals pos, across
// all containers, or within the named container when containerID != 0.
func (s *InventorySnapshot) ShelvesAtPosition(pos int, containerID uint) []ShelfRef {
	var refs []ShelfRef
	for i := range s.Containers {
		c := &s.Containers[i]
		if containerID != 0 && c.ID != containerID {
			continue
		}
		for j := range c.Shelves {
			if c.Shelves[j].Position == pos {
				refs = append(refs, ShelfRef{Container: c, Shelf: &c.Shelves[j]})
			}
		}
	}
	return refs
}

// ShelfByID returns the shelf with the given ID, or nil
func (s *InventorySnapshot) ShelfByID(id uint) *ShelfRef {
	for i := range s.Containers {
		c := &s.Containers[i]
		for j := range c.Shelves {
			if c.Shelves[j].ID == id {
				return &ShelfRef{Container: c, Shelf: &c.Shelves[j]}
			}
		}
	}
	return nil
}

// ContainerByID returns the container with the given ID, or nil
func (s *InventorySnapshot) ContainerByID(id uint) *Container {
	for i := range s.Containers {
		if s.Containers[i].ID == id {
			return &s.Containers[i]
		}
	}
	return nil
}

// ItemOnShelf returns the item with the exact stored name on the shelf, or nil
func (s *ShelfRef) ItemOnShelf(name string) *Item {
	for i := range s.Shelf.Items {
		if s.Shelf.Items[i].Name == name {
			return &s.Shelf.Items[i]
		}
	}
	return nil
}
