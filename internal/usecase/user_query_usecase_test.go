package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestListUsersReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)

	users, err := r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, 1, r.users.listAllCalls)

	_, err = r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.users.listAllCalls, "second listing should be served from cache")

	_, err = r.usecase.CreateUser(ctx, pngRequest(t, "Alice", "30"))
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = r.usecase.CreateUser(ctx, pngRequest(t, "Bob", "41"))
	require.NoError(t, err)

	users, err = r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.users.listAllCalls, "create should invalidate the cached listing")
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[0].Name)
	assert.Equal(t, "Alice", users[1].Name)
}

func TestListUsersDoesNotCacheListingReadBeforeDelete(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)

	user, err := r.usecase.CreateUser(ctx, pngRequest(t, "Alice", "30"))
	require.NoError(t, err)

	// a delete completes between the reader's query and its cache fill
	r.users.afterListAll = func() {
		require.NoError(t, r.usecase.DeleteUser(ctx, fmt.Sprint(user.Id)))
	}

	users, err := r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "the in-flight read still sees the row it queried")
	assert.Empty(t, r.files(t))

	users, err = r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "the pre-delete listing must not be served from cache")
	assert.Equal(t, 2, r.users.listAllCalls)
}

func TestListUsersDoesNotCacheListingReadBeforeCreate(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)

	r.users.afterListAll = func() {
		_, err := r.usecase.CreateUser(ctx, pngRequest(t, "Alice", "30"))
		require.NoError(t, err)
	}

	users, err := r.query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = r.query.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestListUsersIgnoresCacheFaults(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)
	r.cache.getErr = errors.New("redis: connection refused")

	_, err := r.usecase.CreateUser(ctx, pngRequest(t, "Alice", "30"))
	require.NoError(t, err)

	users, err := r.query.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestListUsersWithoutCache(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)
	query := NewUserQueryUsecase(r.users, nil, zaptest.NewLogger(t))

	_, err := query.ListUsers(ctx)
	require.NoError(t, err)
	_, err = query.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.users.listAllCalls)
}
