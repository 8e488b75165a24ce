package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ferdian3456/userregistry/internal/model"
)

// faultyUserStore wraps a real store and injects failures on demand.
type faultyUserStore struct {
	UserStore
	insertErr     error
	deleteByIdErr error
	listAllCalls  int
	afterListAll  func()
}

func (s *faultyUserStore) Insert(ctx context.Context, name string, age int, imagePath string) (model.User, error) {
	if s.insertErr != nil {
		return model.User{}, s.insertErr
	}
	return s.UserStore.Insert(ctx, name, age, imagePath)
}

func (s *faultyUserStore) ListAll(ctx context.Context) ([]model.User, error) {
	s.listAllCalls++
	users, err := s.UserStore.ListAll(ctx)
	if s.afterListAll != nil {
		hook := s.afterListAll
		s.afterListAll = nil
		hook()
	}
	return users, err
}

func (s *faultyUserStore) DeleteById(ctx context.Context, id int64) error {
	if s.deleteByIdErr != nil {
		return s.deleteByIdErr
	}
	return s.UserStore.DeleteById(ctx, id)
}

type faultyAssetStore struct {
	AssetStore
	putCalls  int
	deleted   []model.AssetRef
	deleteErr error
}

func (s *faultyAssetStore) Put(ctx context.Context, upload *model.ImageUpload) (model.AssetRef, error) {
	s.putCalls++
	return s.AssetStore.Put(ctx, upload)
}

func (s *faultyAssetStore) Delete(ctx context.Context, ref model.AssetRef) error {
	s.deleted = append(s.deleted, ref)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.AssetStore.Delete(ctx, ref)
}

type memoryUserListCache struct {
	mu          sync.Mutex
	users       []model.User
	filled      bool
	generation  int64
	invalidated int
	getErr      error
}

func (c *memoryUserListCache) Get(ctx context.Context) ([]model.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.users, c.filled, nil
}

func (c *memoryUserListCache) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generation, nil
}

func (c *memoryUserListCache) Set(ctx context.Context, users []model.User, generation int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return false, nil
	}
	c.users = users
	c.filled = true
	return true, nil
}

func (c *memoryUserListCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.users = nil
	c.filled = false
	c.generation++
	c.invalidated++
	return nil
}

var errDiskFull = errors.New("disk full")

func persistenceFault() error {
	return fmt.Errorf("%w: insert user: %w", model.ErrPersistence, errors.New("connection reset"))
}
