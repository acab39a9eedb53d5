package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *InventorySnapshot {
	return &InventorySnapshot{
		UserID:  "user-1",
		Version: 3,
		Containers: []Container{
			{ID: 1, Name: "Zamrażarka", Kind: KindFreezer, Shelves: []Shelf{
				{ID: 10, ContainerID: 1, Name: "Górna", Position: 1, Items: []Item{
					{ID: 100, ShelfID: 10, Name: "mleko", Quantity: 2},
				}},
				{ID: 11, ContainerID: 1, Name: "Dolna", Position: 2},
			}},
			{ID: 2, Name: "Lodówka", Kind: KindFridge, Shelves: []Shelf{
				{ID: 20, ContainerID: 2, Name: "Top Shelf", Position: 1},
			}},
		},
	}
}

func TestShelvesAtPosition(t *testing.T) {
	snap := testSnapshot()

	refs := snap.ShelvesAtPosition(1, 0)
	require.Len(t, refs, 2)
	assert.Equal(t, uint(10), refs[0].Shelf.ID)
	assert.Equal(t, uint(20), refs[1].Shelf.ID)

	refs = snap.ShelvesAtPosition(1, 2)
	require.Len(t, refs, 1)
	assert.Equal(t, uint(20), refs[0].Shelf.ID)
	assert.Equal(t, "Lodówka", refs[0].Container.Name)

	assert.Empty(t, snap.ShelvesAtPosition(5, 0))
}

func TestShelfByID(t *testing.T) {
	snap := testSnapshot()

	ref := snap.ShelfByID(11)
	require.NotNil(t, ref)
	assert.Equal(t, "Dolna", ref.Shelf.Name)
	assert.Equal(t, uint(1), ref.Container.ID)

	assert.Nil(t, snap.ShelfByID(99))
}

func TestContainerByID(t *testing.T) {
	snap := testSnapshot()

	c := snap.ContainerByID(2)
	require.NotNil(t, c)
	assert.Equal(t, "Lodówka", c.Name)

	assert.Nil(t, snap.ContainerByID(99))
}

func TestItemOnShelf(t *testing.T) {
	snap := testSnapshot()
	ref := snap.ShelfByID(10)
	require.NotNil(t, ref)

	item := ref.ItemOnShelf("mleko")
	require.NotNil(t, item)
	assert.Equal(t, 2, item.Quantity)

	assert.Nil(t, ref.ItemOnShelf("jajka"))
}
