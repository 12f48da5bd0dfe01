// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"

	"github.com/snaplink/snaplink/internal/model"
)

// Service errors.
var (
	ErrInvalidDestination = errors.New("invalid destination URL")
	ErrInvalidCode        = errors.New("invalid short code format")
	ErrCodeTaken          = errors.New("short code already in use")
	ErrCodeSpaceExhausted = errors.New("could not find an unused short code")
	ErrLinkNotFound       = errors.New("link not found")
	ErrLinkExpired        = errors.New("link is expired")
	ErrForbidden          = errors.New("link belongs to a different owner")
	ErrExpiresInPast      = errors.New("expiration must be in the future")
	ErrURLTooLong         = errors.New("destination URL too long")
)

// LinkStore is the persistence surface the services require for links.
// *repository.Repository satisfies it; tests substitute mocks or an
// in-memory implementation.
type LinkStore interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByID(ctx context.Context, id string) (*model.Link, error)
	GetLinkByCode(ctx context.Context, shortCode string) (*model.Link, error)
	ListLinks(ctx context.Context, ownerID, search string, page, limit int) ([]*model.Link, int64, error)
	UpdateLink(ctx context.Context, link *model.Link) error
	DeleteLink(ctx context.Context, id string) error
	DeleteLinksByOwner(ctx context.Context, ownerID string) (int64, error)
	CodeExists(ctx context.Context, shortCode string) (bool, error)
}

// ClickStore is the persistence surface for the append-only click log and
// the aggregate views derived from it.
type ClickStore interface {
	InsertClick(ctx context.Context, click *model.Click) error
	LinkClickSummary(ctx context.Context, linkID string) (*model.LinkClickSummary, error)
	OwnerClickTotal(ctx context.Context, ownerID string) (int64, error)
	OwnerDateCounts(ctx context.Context, ownerID string) ([]model.DateClicks, error)
	OwnerDeviceCounts(ctx context.Context, ownerID string) (model.DeviceClicks, error)
	ListOwnerClicks(ctx context.Context, ownerID string, page, limit int) ([]*model.ClickDetail, int64, error)
}

// LinkCache is the optional hot-path cache for redirect resolution.
// A nil LinkCache disables caching; correctness never depends on it.
type LinkCache interface {
	GetLink(ctx context.Context, shortCode string) (*model.CachedLink, error)
	SetLink(ctx context.Context, shortCode string, link *model.Link) error
	DeleteLink(ctx context.Context, shortCode string) error
	IsNegativelyCached(ctx context.Context, shortCode string) (bool, error)
	SetNegativeCache(ctx context.Context, shortCode string) error
}

// newID generates a time-sortable unique identifier.
func newID() string {
	return ulid.Make().String()
}
