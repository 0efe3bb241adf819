package storefront_test

import (
	"context"
	"database/sql"
	"testing"

	storefront "github.com/goliatone/go-storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storefront.CreateLocalTables(context.Background(), db))
	return db
}

func TestMemoryTokenStore(t *testing.T) {
	store := storefront.NewMemoryTokenStore()
	ctx := context.Background()

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Put(ctx, "token-a"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	// A second Put replaces the token.
	require.NoError(t, store.Put(ctx, "token-b"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing an empty store stays idempotent.
	require.NoError(t, store.Clear(ctx))
}

func TestMemoryTokenStoreRejectsEmptyToken(t *testing.T) {
	store := storefront.NewMemoryTokenStore()
	err := store.Put(context.Background(), "")
	require.Error(t, err)
	assert.True(t, storefront.IsValidationError(err))
}

func TestBunTokenStore(t *testing.T) {
	db := newTestDB(t)
	store := storefront.NewBunTokenStore(db)
	ctx := context.Background()

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "missing row reads as no token")

	require.NoError(t, store.Put(ctx, "token-a"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	// The scope holds a single row; a new token upserts over the old one.
	require.NoError(t, store.Put(ctx, "token-b"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Clear(ctx))
}

func TestBunTokenStoreScopes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	primary := storefront.NewBunTokenStore(db)
	secondary := storefront.NewBunTokenStore(db, storefront.WithTokenScope("kiosk"))

	require.NoError(t, primary.Put(ctx, "token-main"))
	require.NoError(t, secondary.Put(ctx, "token-kiosk"))

	token, err := primary.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-main", token)

	require.NoError(t, secondary.Clear(ctx))

	token, err = primary.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-main", token, "clearing one scope leaves the other intact")

	token, err = secondary.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
