package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pmusial/spizarka/internal/inventory/domain"
)

func getTestRepo(t *testing.T) *GormInventoryRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres password=postgres dbname=spizarka_test sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	repo := NewGormInventoryRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repo
}

func testUserID() string {
	return fmt.Sprintf("test-user-%d", time.Now().UnixNano())
}

// seedInventory creates one container with two shelves and 3 mleko on the
// first shelf, through the same repository methods production uses.
func seedInventory(t *testing.T, repo *GormInventoryRepository, ctx context.Context, userID string) (source, target uint) {
	t.Helper()

	container := &domain.Container{UserID: userID, Name: "Zamrażarka", Kind: domain.KindFreezer}
	require.NoError(t, repo.CreateContainer(ctx, container))

	top := &domain.Shelf{ContainerID: container.ID, Name: "Górna", Position: 1}
	require.NoError(t, repo.CreateShelf(ctx, userID, top))
	bottom := &domain.Shelf{ContainerID: container.ID, Name: "Dolna", Position: 2}
	require.NoError(t, repo.CreateShelf(ctx, userID, bottom))

	item := &domain.Item{Name: "mleko", Quantity: 3}
	require.NoError(t, repo.UpsertItem(ctx, userID, top.ID, item))

	return top.ID, bottom.ID
}

func itemOn(t *testing.T, repo *GormInventoryRepository, ctx context.Context, userID string, shelfID uint, name string) *domain.Item {
	t.Helper()
	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)
	ref := snap.ShelfByID(shelfID)
	require.NotNil(t, ref)
	return ref.ItemOnShelf(name)
}

func TestApplyMutationMoveIsAtomic(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, target := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	res, err := repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationMove,
		ItemName:      "mleko",
		Quantity:      2,
		SourceShelfID: source,
		TargetShelfID: target,
	}, snap.Version)
	require.NoError(t, err)

	assert.Equal(t, domain.MutationMove, res.Kind)
	assert.Equal(t, 2, res.Quantity)
	assert.True(t, res.Created)
	assert.False(t, res.Deleted)
	assert.Equal(t, snap.Version+1, res.NewVersion)

	srcItem := itemOn(t, repo, ctx, userID, source, "mleko")
	require.NotNil(t, srcItem)
	assert.Equal(t, 1, srcItem.Quantity)
	dstItem := itemOn(t, repo, ctx, userID, target, "mleko")
	require.NotNil(t, dstItem)
	assert.Equal(t, 2, dstItem.Quantity)
}

func TestApplyMutationMoveEmptiesSource(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, target := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	res, err := repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationMove,
		ItemName:      "mleko",
		Quantity:      3,
		SourceShelfID: source,
		TargetShelfID: target,
	}, snap.Version)
	require.NoError(t, err)
	assert.True(t, res.Deleted, "moving the full stock must empty the source row")

	// The item exists on exactly one shelf afterwards.
	assert.Nil(t, itemOn(t, repo, ctx, userID, source, "mleko"))
	dstItem := itemOn(t, repo, ctx, userID, target, "mleko")
	require.NotNil(t, dstItem)
	assert.Equal(t, 3, dstItem.Quantity)
}

func TestApplyMutationMoveRollsBackOnUnderflow(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, target := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	_, err = repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationMove,
		ItemName:      "mleko",
		Quantity:      5,
		SourceShelfID: source,
		TargetShelfID: target,
	}, snap.Version)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing moved and the version was not consumed.
	srcItem := itemOn(t, repo, ctx, userID, source, "mleko")
	require.NotNil(t, srcItem)
	assert.Equal(t, 3, srcItem.Quantity)
	assert.Nil(t, itemOn(t, repo, ctx, userID, target, "mleko"))

	after, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, snap.Version, after.Version)
}

func TestApplyMutationRemoveDeletesAtZero(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, _ := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	res, err := repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationRemove,
		ItemName:      "mleko",
		Quantity:      3,
		SourceShelfID: source,
	}, snap.Version)
	require.NoError(t, err)

	assert.True(t, res.Deleted)
	assert.Equal(t, 0, res.Quantity)
	assert.Nil(t, itemOn(t, repo, ctx, userID, source, "mleko"))
}

func TestApplyMutationAddIncrementsCaseInsensitively(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, _ := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	res, err := repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationAdd,
		ItemName:      "Mleko",
		Quantity:      2,
		TargetShelfID: source,
	}, snap.Version)
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Equal(t, "mleko", res.ItemName)
	assert.Equal(t, 5, res.Quantity)
}

func TestApplyMutationRejectsStaleVersion(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, _ := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	add := &domain.Mutation{
		Kind:          domain.MutationAdd,
		ItemName:      "mleko",
		Quantity:      1,
		TargetShelfID: source,
	}

	_, err = repo.ApplyMutation(ctx, userID, add, snap.Version)
	require.NoError(t, err)

	// Same snapshot version again, after the store moved past it.
	_, err = repo.ApplyMutation(ctx, userID, add, snap.Version)
	require.ErrorIs(t, err, domain.ErrStaleSnapshot)

	srcItem := itemOn(t, repo, ctx, userID, source, "mleko")
	require.NotNil(t, srcItem)
	assert.Equal(t, 4, srcItem.Quantity, "the stale apply must not change quantities")
}

func TestApplyMutationUnknownShelf(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	_, err = repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationAdd,
		ItemName:      "mleko",
		Quantity:      1,
		TargetShelfID: 999999999,
	}, snap.Version)
	require.ErrorIs(t, err, domain.ErrShelfNotInSnap)
}

func TestVersionSeededOnFirstWrite(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()

	// First write for a user who never loaded a snapshot.
	container := &domain.Container{UserID: userID, Name: "Lodówka", Kind: domain.KindFridge}
	require.NoError(t, repo.CreateContainer(ctx, container))

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Version)
	require.Len(t, snap.Containers, 1)
	assert.Equal(t, "Lodówka", snap.Containers[0].Name)
}

func TestCrudWritesInvalidateSnapshots(t *testing.T) {
	repo := getTestRepo(t)
	ctx := context.Background()
	userID := testUserID()
	source, _ := seedInventory(t, repo, ctx, userID)

	snap, err := repo.LoadSnapshot(ctx, userID)
	require.NoError(t, err)

	// A manual dashboard edit between load and apply.
	item := &domain.Item{Name: "jajka", Quantity: 6}
	require.NoError(t, repo.UpsertItem(ctx, userID, source, item))

	_, err = repo.ApplyMutation(ctx, userID, &domain.Mutation{
		Kind:          domain.MutationRemove,
		ItemName:      "mleko",
		Quantity:      1,
		SourceShelfID: source,
	}, snap.Version)
	require.ErrorIs(t, err, domain.ErrStaleSnapshot)
}
