package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rahvarz/bazar/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"type:text;not null"`
	Kind      string `gorm:"type:text"`
	Count     int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func setupStore(t *testing.T) (Repository[widget], *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&widget{}))
	return ProvideStore[widget](conn), conn
}

func TestCreateAndFindByID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &widget{ID: 1, Name: "first"}))

	got, err := store.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)

	missing, err := store.FindByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateMutatesUnderLock(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &widget{ID: 7, Name: "before"}))

	updated, err := store.Update(ctx, 7, func(_ *gorm.DB, row *widget) error {
		row.Name = "after"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)

	got, err := store.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &widget{ID: 11, Name: "counter"}))

	// Each writer reads the row inside its own locked transaction; the
	// second must observe the first's committed increment, never the
	// snapshot it overwrote. sqlite reports contention as a busy error
	// rather than blocking, so writers retry until their increment lands.
	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var lastErr error
			for attempt := 0; attempt < 200; attempt++ {
				_, lastErr = store.Update(ctx, 11, func(_ *gorm.DB, row *widget) error {
					row.Count++
					return nil
				})
				if lastErr == nil {
					break
				}
				time.Sleep(time.Millisecond)
			}
			errs <- lastErr
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := store.FindByID(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), got.Count)
}

func TestUpdateMissingRowReturnsSentinel(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Update(context.Background(), 42, func(_ *gorm.DB, row *widget) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFoundOrLocked)
}

func TestDeleteRunsSideEffectsInSameTransaction(t *testing.T) {
	store, conn := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &widget{ID: 3, Name: "parent"}))
	require.NoError(t, store.Create(ctx, &widget{ID: 4, Name: "child", Kind: "of-3"}))

	err := store.Delete(ctx, 3, func(tx *gorm.DB, _ *widget) error {
		return tx.Where("kind = ?", "of-3").Delete(&widget{}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.Model(&widget{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingRowReturnsSentinel(t *testing.T) {
	store, _ := setupStore(t)
	err := store.Delete(context.Background(), 41, nil)
	assert.ErrorIs(t, err, ErrNotFoundOrLocked)
}

func TestCountAndFindWithQuery(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &widget{ID: 10, Name: "a", Kind: "x"}))
	require.NoError(t, store.Create(ctx, &widget{ID: 11, Name: "b", Kind: "x"}))
	require.NoError(t, store.Create(ctx, &widget{ID: 12, Name: "c", Kind: "y"}))

	n, err := store.Count(ctx, &widget{Kind: "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	items, err := store.Find(ctx, &widget{Kind: "y"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Name)
}
