// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// LinkStatus represents the computed status of a link.
type LinkStatus string

const (
	LinkStatusActive  LinkStatus = "active"
	LinkStatusExpired LinkStatus = "expired"
)

// Link represents a shortened URL entity.
// ShortURL is derived from the configured base address and ShortCode and is
// persisted so listing search can match against it; it must be re-derived
// whenever ShortCode changes.
type Link struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	ShortCode      string     `json:"short_code"`
	ShortURL       string     `json:"short_url"`
	DestinationURL string     `json:"destination_url"`
	Remarks        string     `json:"remarks"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	ClickCount     int64      `json:"click_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Status computes the current status of the link.
func (l *Link) Status() LinkStatus {
	if l.IsExpired() {
		return LinkStatusExpired
	}
	return LinkStatusActive
}

// IsExpired reports whether the link's expiry, if set, is strictly in the past.
// Expired links stay queryable for management and analytics; only the redirect
// path treats them as inert.
func (l *Link) IsExpired() bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(time.Now())
}

// IsOwnedBy reports whether the link belongs to the given owner.
func (l *Link) IsOwnedBy(ownerID string) bool {
	return l.OwnerID == ownerID
}

// CachedLink represents link data stored in Redis for the redirect hot path.
// Uses string types for Redis hash compatibility.
type CachedLink struct {
	LinkID         string `redis:"link_id"`
	DestinationURL string `redis:"destination_url"`
	ExpiresAt      string `redis:"expires_at"` // Unix timestamp or empty
	CreatedAt      string `redis:"created_at"` // Unix timestamp
}

// ToLink converts CachedLink to the Link domain model.
func (c *CachedLink) ToLink(shortCode string) *Link {
	link := &Link{
		ID:             c.LinkID,
		ShortCode:      shortCode,
		DestinationURL: c.DestinationURL,
	}

	if c.ExpiresAt != "" {
		if ts, err := strconv.ParseInt(c.ExpiresAt, 10, 64); err == nil {
			t := time.Unix(ts, 0)
			link.ExpiresAt = &t
		}
	}

	if c.CreatedAt != "" {
		if ts, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
			link.CreatedAt = time.Unix(ts, 0)
		}
	}

	return link
}

// ToCachedLink converts the Link domain model to CachedLink.
func (l *Link) ToCachedLink() *CachedLink {
	cached := &CachedLink{
		LinkID:         l.ID,
		DestinationURL: l.DestinationURL,
		CreatedAt:      strconv.FormatInt(l.CreatedAt.Unix(), 10),
	}

	if l.ExpiresAt != nil {
		cached.ExpiresAt = strconv.FormatInt(l.ExpiresAt.Unix(), 10)
	}

	return cached
}
