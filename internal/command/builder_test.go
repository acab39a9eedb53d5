package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

func resolvedShelf(c *domain.Container, s *domain.Shelf) *ShelfResolution {
	return &ShelfResolution{
		State:  RefResolved,
		Phrase: s.Name,
		Ref:    &domain.ShelfRef{Container: c, Shelf: s},
	}
}

func builderFixture() (*domain.Container, *domain.Shelf, *domain.Shelf, *domain.Item) {
	container := &domain.Container{ID: 1, Name: "Zamrażarka", Kind: domain.KindFreezer}
	top := &domain.Shelf{ID: 10, ContainerID: 1, Name: "Górna", Position: 1}
	bottom := &domain.Shelf{ID: 11, ContainerID: 1, Name: "Dolna", Position: 2}
	item := &domain.Item{ID: 100, ShelfID: 11, Name: "jajka", Quantity: 3}
	return container, top, bottom, item
}

func TestBuildCommandAddNewItem(t *testing.T) {
	container, top, _, _ := builderFixture()

	cmd, err := BuildCommand(&Resolution{
		Action:        ActionAdd,
		Quantity:      2,
		QuantityGiven: true,
		ItemText:      "mleko",
		Target:        resolvedShelf(container, top),
	})
	require.NoError(t, err)

	assert.Equal(t, ActionAdd, cmd.Action)
	assert.Equal(t, "mleko", cmd.ItemName)
	assert.Equal(t, uint(10), cmd.TargetShelfID)
	assert.Equal(t, "Górna", cmd.TargetShelfName)
	assert.Equal(t, "Zamrażarka", cmd.ContainerName)

	m := cmd.Mutation()
	require.NotNil(t, m)
	assert.Equal(t, domain.MutationAdd, m.Kind)
	assert.Equal(t, uint(10), m.TargetShelfID)
	assert.Equal(t, 2, m.Quantity)
}

func TestBuildCommandAddWithoutTarget(t *testing.T) {
	_, err := BuildCommand(&Resolution{
		Action:   ActionAdd,
		Quantity: 2,
		ItemText: "mleko",
	})

	var missErr *MissingArgumentError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "target shelf", missErr.Argument)
}

func TestBuildCommandAddAdoptsExistingNameAndUnit(t *testing.T) {
	container, top, _, _ := builderFixture()
	existing := &domain.Item{ID: 100, ShelfID: 10, Name: "Mleko", Quantity: 3, Unit: "l"}

	cmd, err := BuildCommand(&Resolution{
		Action:   ActionAdd,
		Quantity: 1,
		ItemText: "mleka",
		Item:     existing,
		Target:   resolvedShelf(container, top),
	})
	require.NoError(t, err)

	assert.Equal(t, "Mleko", cmd.ItemName)
	assert.Equal(t, "l", cmd.Unit)
}

func TestBuildCommandMissingItemName(t *testing.T) {
	_, err := BuildCommand(&Resolution{Action: ActionAdd, Quantity: 1})

	var missErr *MissingArgumentError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "item name", missErr.Argument)
}

func TestBuildCommandNonPositiveQuantity(t *testing.T) {
	_, err := BuildCommand(&Resolution{Action: ActionAdd, Quantity: 0, ItemText: "mleko"})

	var missErr *MissingArgumentError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "quantity", missErr.Argument)
}

func TestBuildCommandRemove(t *testing.T) {
	container, _, bottom, item := builderFixture()

	cmd, err := BuildCommand(&Resolution{
		Action:        ActionRemove,
		Quantity:      2,
		QuantityGiven: true,
		ItemText:      "jajka",
		Item:          item,
		ItemShelf:     &domain.ShelfRef{Container: container, Shelf: bottom},
		Source:        resolvedShelf(container, bottom),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(11), cmd.SourceShelfID)
	assert.Equal(t, "Dolna", cmd.SourceShelfName)

	m := cmd.Mutation()
	require.NotNil(t, m)
	assert.Equal(t, domain.MutationRemove, m.Kind)
	assert.Equal(t, uint(11), m.SourceShelfID)
}

func TestBuildCommandRemoveInfersSourceFromItemShelf(t *testing.T) {
	container, _, bottom, item := builderFixture()

	cmd, err := BuildCommand(&Resolution{
		Action:    ActionRemove,
		Quantity:  1,
		ItemText:  "jajka",
		Item:      item,
		ItemShelf: &domain.ShelfRef{Container: container, Shelf: bottom},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(11), cmd.SourceShelfID)
}

func TestBuildCommandRemoveRejectsUnderflow(t *testing.T) {
	container, _, bottom, item := builderFixture()

	_, err := BuildCommand(&Resolution{
		Action:        ActionRemove,
		Quantity:      5,
		QuantityGiven: true,
		ItemText:      "jajka",
		Item:          item,
		ItemShelf:     &domain.ShelfRef{Container: container, Shelf: bottom},
		Source:        resolvedShelf(container, bottom),
	})

	var qtyErr *InsufficientQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, 5, qtyErr.Requested)
	assert.Equal(t, 3, qtyErr.Available)
}

func TestBuildCommandMoveRequiresExplicitQuantity(t *testing.T) {
	container, top, bottom, item := builderFixture()

	_, err := BuildCommand(&Resolution{
		Action:    ActionMove,
		Quantity:  1,
		ItemText:  "jajka",
		Item:      item,
		ItemShelf: &domain.ShelfRef{Container: container, Shelf: bottom},
		Source:    resolvedShelf(container, bottom),
		Target:    resolvedShelf(container, top),
	})

	var missErr *MissingArgumentError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "quantity", missErr.Argument)
}

func TestBuildCommandMoveRejectsSameShelf(t *testing.T) {
	container, _, bottom, item := builderFixture()

	_, err := BuildCommand(&Resolution{
		Action:        ActionMove,
		Quantity:      1,
		QuantityGiven: true,
		ItemText:      "jajka",
		Item:          item,
		ItemShelf:     &domain.ShelfRef{Container: container, Shelf: bottom},
		Source:        resolvedShelf(container, bottom),
		Target:        resolvedShelf(container, bottom),
	})

	var missErr *MissingArgumentError
	require.ErrorAs(t, err, &missErr)
	assert.Equal(t, "target shelf", missErr.Argument)
}

func TestBuildCommandMove(t *testing.T) {
	container, top, bottom, item := builderFixture()

	cmd, err := BuildCommand(&Resolution{
		Action:        ActionMove,
		Quantity:      2,
		QuantityGiven: true,
		ItemText:      "jajka",
		Item:          item,
		ItemShelf:     &domain.ShelfRef{Container: container, Shelf: bottom},
		Source:        resolvedShelf(container, bottom),
		Target:        resolvedShelf(container, top),
	})
	require.NoError(t, err)

	m := cmd.Mutation()
	require.NotNil(t, m)
	assert.Equal(t, domain.MutationMove, m.Kind)
	assert.Equal(t, uint(11), m.SourceShelfID)
	assert.Equal(t, uint(10), m.TargetShelfID)
	assert.Equal(t, 2, m.Quantity)
}

func TestBuildCommandQuery(t *testing.T) {
	container, _, bottom, item := builderFixture()

	cmd, err := BuildCommand(&Resolution{
		Action:    ActionQuery,
		Quantity:  1,
		ItemText:  "jajka",
		Item:      item,
		ItemShelf: &domain.ShelfRef{Container: container, Shelf: bottom},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dolna", cmd.SourceShelfName)
	assert.Nil(t, cmd.Mutation())
}

func TestBuildCommandQueryUnknownItem(t *testing.T) {
	_, err := BuildCommand(&Resolution{
		Action:   ActionQuery,
		Quantity: 1,
		ItemText: "ogórki",
	})

	var nfErr *ItemNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "ogórki", nfErr.Name)
}
