package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/snaplink/snaplink/internal/model"
)

// MockLinkStore is a mock implementation of LinkStore.
type MockLinkStore struct {
	mock.Mock
}

func (m *MockLinkStore) CreateLink(ctx context.Context, link *model.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkStore) GetLinkByID(ctx context.Context, id string) (*model.Link, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}

func (m *MockLinkStore) GetLinkByCode(ctx context.Context, shortCode string) (*model.Link, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Link), args.Error(1)
}

func (m *MockLinkStore) ListLinks(ctx context.Context, ownerID, search string, page, limit int) ([]*model.Link, int64, error) {
	args := m.Called(ctx, ownerID, search, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Link), args.Get(1).(int64), args.Error(2)
}

func (m *MockLinkStore) UpdateLink(ctx context.Context, link *model.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkStore) DeleteLink(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLinkStore) DeleteLinksByOwner(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkStore) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

// MockClickStore is a mock implementation of ClickStore.
type MockClickStore struct {
	mock.Mock
}

func (m *MockClickStore) InsertClick(ctx context.Context, click *model.Click) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockClickStore) LinkClickSummary(ctx context.Context, linkID string) (*model.LinkClickSummary, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkClickSummary), args.Error(1)
}

func (m *MockClickStore) OwnerClickTotal(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClickStore) OwnerDateCounts(ctx context.Context, ownerID string) ([]model.DateClicks, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DateClicks), args.Error(1)
}

func (m *MockClickStore) OwnerDeviceCounts(ctx context.Context, ownerID string) (model.DeviceClicks, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.DeviceClicks), args.Error(1)
}

func (m *MockClickStore) ListOwnerClicks(ctx context.Context, ownerID string, page, limit int) ([]*model.ClickDetail, int64, error) {
	args := m.Called(ctx, ownerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.ClickDetail), args.Get(1).(int64), args.Error(2)
}

// MockLinkCache is a mock implementation of LinkCache.
type MockLinkCache struct {
	mock.Mock
}

func (m *MockLinkCache) GetLink(ctx context.Context, shortCode string) (*model.CachedLink, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CachedLink), args.Error(1)
}

func (m *MockLinkCache) SetLink(ctx context.Context, shortCode string, link *model.Link) error {
	args := m.Called(ctx, shortCode, link)
	return args.Error(0)
}

func (m *MockLinkCache) DeleteLink(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

func (m *MockLinkCache) IsNegativelyCached(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockLinkCache) SetNegativeCache(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}
