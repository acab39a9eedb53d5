package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmusial/spizarka/internal/inventory/domain"
	"github.com/pmusial/spizarka/kafka"
)

type fakeStore struct {
	snap     *domain.InventorySnapshot
	loads    int
	applies  []*domain.Mutation
	versions []int64
	applyRes *domain.MutationResult
	applyErr error
}

func (f *fakeStore) LoadSnapshot(ctx context.Context, userID string) (*domain.InventorySnapshot, error) {
	f.loads++
	return f.snap, nil
}

func (f *fakeStore) ApplyMutation(ctx context.Context, userID string, m *domain.Mutation, expectedVersion int64) (*domain.MutationResult, error) {
	f.applies = append(f.applies, m)
	f.versions = append(f.versions, expectedVersion)
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return f.applyRes, nil
}

type fakePublisher struct {
	events []kafka.CommandAppliedEvent
	err    error
}

func (f *fakePublisher) PublishCommandApplied(ctx context.Context, event kafka.CommandAppliedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func TestProcessAddCreatesItem(t *testing.T) {
	store := &fakeStore{
		snap: twoContainerSnapshot(),
		applyRes: &domain.MutationResult{
			Kind:        domain.MutationAdd,
			ItemID:      300,
			ItemName:    "wody",
			Quantity:    2,
			ShelfID:     10,
			ContainerID: 1,
			Created:     true,
			NewVersion:  8,
		},
	}
	p := NewProcessor(store)

	result, err := p.Process(context.Background(), "user-1", "dodaj 2 wody na pierwszą półkę w zamrażarce")
	require.NoError(t, err)

	require.Len(t, store.applies, 1)
	m := store.applies[0]
	assert.Equal(t, domain.MutationAdd, m.Kind)
	assert.Equal(t, "wody", m.ItemName)
	assert.Equal(t, 2, m.Quantity)
	assert.Equal(t, uint(10), m.TargetShelfID)
	assert.Equal(t, int64(7), store.versions[0])

	assert.Equal(t, "ADD", result.Action)
	assert.True(t, result.Created)
	assert.Equal(t, uint(300), result.ItemID)
	assert.Equal(t, "Górna", result.ShelfName)
	assert.Equal(t, int64(8), result.Version)
}

func TestProcessAddOrdinalInSingleContainer(t *testing.T) {
	snap := &domain.InventorySnapshot{
		UserID:  "user-1",
		Version: 1,
		Containers: []domain.Container{
			{ID: 1, Name: "Freezer", Kind: domain.KindFreezer, Shelves: []domain.Shelf{
				{ID: 10, ContainerID: 1, Name: "Top Shelf", Position: 1},
				{ID: 11, ContainerID: 1, Name: "Bottom Shelf", Position: 2},
			}},
		},
	}
	store := &fakeStore{
		snap: snap,
		applyRes: &domain.MutationResult{
			Kind:       domain.MutationAdd,
			ItemID:     300,
			ItemName:   "mleka",
			Quantity:   2,
			ShelfID:    10,
			Created:    true,
			NewVersion: 2,
		},
	}
	p := NewProcessor(store)

	result, err := p.Process(context.Background(), "user-1", "dodaj 2 mleka na pierwszą półkę")
	require.NoError(t, err)

	require.Len(t, store.applies, 1)
	assert.Equal(t, uint(10), store.applies[0].TargetShelfID)
	assert.Equal(t, "mleka", result.ItemName)
	assert.Equal(t, "Top Shelf", result.ShelfName)
	assert.True(t, result.Created)
	assert.Equal(t, 2, result.Quantity)
}

func TestProcessAddIncrementsExisting(t *testing.T) {
	store := &fakeStore{
		snap: twoContainerSnapshot(),
		applyRes: &domain.MutationResult{
			Kind:       domain.MutationAdd,
			ItemID:     100,
			ItemName:   "mleko",
			Quantity:   5,
			ShelfID:    10,
			NewVersion: 8,
		},
	}
	p := NewProcessor(store)

	result, err := p.Process(context.Background(), "user-1", "dodaj 2 mleka na pierwszą półkę w zamrażarce")
	require.NoError(t, err)

	require.Len(t, store.applies, 1)
	assert.Equal(t, "mleko", store.applies[0].ItemName)
	assert.False(t, result.Created)
	assert.Equal(t, 5, result.Quantity)
	assert.Contains(t, result.Message, "now 5")
}

func TestProcessRemoveRejectsUnderflow(t *testing.T) {
	store := &fakeStore{snap: twoContainerSnapshot()}
	p := NewProcessor(store)

	// only 3 jajka in stock
	_, err := p.Process(context.Background(), "user-1", "usuń 5 jajek")

	var qtyErr *InsufficientQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, 5, qtyErr.Requested)
	assert.Equal(t, 3, qtyErr.Available)
	assert.Empty(t, store.applies, "a rejected command must not reach the store")
}

func TestProcessMoveAppliesSingleMutation(t *testing.T) {
	store := &fakeStore{
		snap: twoContainerSnapshot(),
		applyRes: &domain.MutationResult{
			Kind:       domain.MutationMove,
			ItemID:     101,
			ItemName:   "jajka",
			Quantity:   2,
			ShelfID:    10,
			Deleted:    false,
			NewVersion: 8,
		},
	}
	p := NewProcessor(store)

	result, err := p.Process(context.Background(), "user-1", "przenieś 2 jajka z dolnej na górną")
	require.NoError(t, err)

	require.Len(t, store.applies, 1)
	m := store.applies[0]
	assert.Equal(t, domain.MutationMove, m.Kind)
	assert.Equal(t, uint(11), m.SourceShelfID)
	assert.Equal(t, uint(10), m.TargetShelfID)
	assert.Equal(t, "MOVE", result.Action)
	assert.Contains(t, result.Message, "Dolna")
	assert.Contains(t, result.Message, "Górna")
}

func TestProcessQueryReadsSnapshotOnly(t *testing.T) {
	store := &fakeStore{snap: twoContainerSnapshot()}
	p := NewProcessor(store)

	result, err := p.Process(context.Background(), "user-1", "ile mam jajek")
	require.NoError(t, err)

	assert.Empty(t, store.applies)
	assert.Equal(t, "QUERY", result.Action)
	assert.Equal(t, "jajka", result.ItemName)
	assert.Equal(t, 3, result.Quantity)
	assert.Equal(t, "Dolna", result.ShelfName)
	assert.Equal(t, int64(7), result.Version)
}

func TestProcessAmbiguityStopsPipeline(t *testing.T) {
	store := &fakeStore{snap: twoContainerSnapshot()}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "dodaj 2 wody na pierwszą półkę")

	var ambErr *AmbiguousReferenceError
	require.ErrorAs(t, err, &ambErr)
	assert.Len(t, ambErr.Candidates, 2)
	assert.Empty(t, store.applies)
}

func TestProcessUnknownIntentSkipsSnapshotLoad(t *testing.T) {
	store := &fakeStore{snap: twoContainerSnapshot()}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "pogoda na jutro")

	var intentErr *UnknownIntentError
	require.ErrorAs(t, err, &intentErr)
	assert.Zero(t, store.loads)
}

func TestProcessStaleSnapshot(t *testing.T) {
	store := &fakeStore{
		snap:     twoContainerSnapshot(),
		applyErr: domain.ErrStaleSnapshot,
	}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "usuń 2 jajka z dolnej")

	var concErr *ConcurrentModificationError
	require.ErrorAs(t, err, &concErr)
}

func TestProcessMapsStoreUnderflow(t *testing.T) {
	// The snapshot said 3 were available but another writer got there first.
	store := &fakeStore{
		snap:     twoContainerSnapshot(),
		applyErr: domain.ErrInsufficientStock,
	}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "usuń 2 jajka z dolnej")

	var qtyErr *InsufficientQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, "jajka", qtyErr.Name)
}

func TestProcessWrapsUnexpectedStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{snap: twoContainerSnapshot(), applyErr: boom}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "usuń 2 jajka z dolnej")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestProcessPublishesEvent(t *testing.T) {
	store := &fakeStore{
		snap: twoContainerSnapshot(),
		applyRes: &domain.MutationResult{
			Kind:        domain.MutationRemove,
			ItemID:      101,
			ItemName:    "jajka",
			Quantity:    1,
			ShelfID:     11,
			ContainerID: 1,
			NewVersion:  8,
		},
	}
	pub := &fakePublisher{}
	p := NewProcessor(store, WithPublisher(pub))

	_, err := p.Process(context.Background(), "user-1", "usuń 2 jajka z dolnej")
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "REMOVE", event.Action)
	assert.Equal(t, "jajka", event.ItemName)
	assert.Equal(t, int64(8), event.Version)
}

func TestProcessSurvivesPublisherFailure(t *testing.T) {
	store := &fakeStore{
		snap: twoContainerSnapshot(),
		applyRes: &domain.MutationResult{
			Kind:       domain.MutationRemove,
			ItemID:     101,
			ItemName:   "jajka",
			Quantity:   1,
			ShelfID:    11,
			NewVersion: 8,
		},
	}
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewProcessor(store, WithPublisher(pub))

	result, err := p.Process(context.Background(), "user-1", "usuń 2 jajka z dolnej")
	require.NoError(t, err)
	assert.Equal(t, "REMOVE", result.Action)
}

func TestProcessEmptyUtterance(t *testing.T) {
	store := &fakeStore{snap: twoContainerSnapshot()}
	p := NewProcessor(store)

	_, err := p.Process(context.Background(), "user-1", "   ")

	var emptyErr *EmptyUtteranceError
	require.ErrorAs(t, err, &emptyErr)
	assert.Zero(t, store.loads)
}
