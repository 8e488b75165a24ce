package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/testutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPostgresUserRepository(t *testing.T) {
	ctx := context.Background()
	pgURL := testutil.StartPostgres(ctx, t)

	// pool-only settings in the url must not reach the server during migration
	pool, err := pgxpool.New(ctx, pgURL+"&pool_max_conns=4&pool_min_conns=1")
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repository := NewUserRepository(zaptest.NewLogger(t), pool)
	require.NoError(t, repository.Init(ctx))
	require.NoError(t, repository.Init(ctx), "second init should be a no-op")
	require.NoError(t, pool.Ping(ctx), "init must leave the pool open")

	var version int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT version FROM schema_migrations").Scan(&version))
	assert.Equal(t, int64(1), version)

	t.Run("empty listing", func(t *testing.T) {
		users, err := repository.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	var alice model.User
	t.Run("insert and find", func(t *testing.T) {
		alice, err = repository.Insert(ctx, "Alice", 30, "/uploads/image-1-1.png")
		require.NoError(t, err)
		assert.Equal(t, int64(1), alice.Id)
		assert.Equal(t, "Alice", alice.Name)
		assert.False(t, alice.CreatedAt.IsZero())

		found, err := repository.FindById(ctx, alice.Id)
		require.NoError(t, err)
		assert.Equal(t, alice.Name, found.Name)
		assert.Equal(t, alice.Age, found.Age)
		assert.Equal(t, alice.ImagePath, found.ImagePath)
	})

	t.Run("newest first", func(t *testing.T) {
		time.Sleep(2 * time.Millisecond)
		bob, err := repository.Insert(ctx, "Bob", 41, "/uploads/image-1-2.png")
		require.NoError(t, err)

		users, err := repository.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, bob.Id, users[0].Id)
		assert.Equal(t, alice.Id, users[1].Id)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repository.DeleteById(ctx, alice.Id))

		_, err := repository.FindById(ctx, alice.Id)
		assert.True(t, model.HasCode(err, constant.ERR_NOT_FOUND_ERROR), "unexpected error: %v", err)

		err = repository.DeleteById(ctx, alice.Id)
		assert.True(t, model.HasCode(err, constant.ERR_NOT_FOUND_ERROR), "unexpected error: %v", err)
	})
}
