package model

import (
	"testing"
	"time"
)

func TestLink_Status(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      LinkStatus
	}{
		{"no expiry", nil, LinkStatusActive},
		{"future expiry", timePtr(now.Add(time.Hour)), LinkStatusActive},
		{"past expiry", timePtr(now.Add(-time.Hour)), LinkStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := &Link{ExpiresAt: tt.expiresAt}
			if got := link.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLink_IsOwnedBy(t *testing.T) {
	link := &Link{OwnerID: "user-1"}
	if !link.IsOwnedBy("user-1") {
		t.Error("expected link to be owned by user-1")
	}
	if link.IsOwnedBy("user-2") {
		t.Error("expected link not to be owned by user-2")
	}
}

func TestLink_CachedLinkRoundTrip(t *testing.T) {
	created := time.Now().Add(-time.Hour).Truncate(time.Second)
	expires := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	link := &Link{
		ID:             "link-1",
		ShortCode:      "abc12345",
		DestinationURL: "https://example.com/page",
		ExpiresAt:      &expires,
		CreatedAt:      created,
	}

	restored := link.ToCachedLink().ToLink("abc12345")

	if restored.ID != link.ID {
		t.Errorf("ID = %q, want %q", restored.ID, link.ID)
	}
	if restored.ShortCode != "abc12345" {
		t.Errorf("ShortCode = %q, want abc12345", restored.ShortCode)
	}
	if restored.DestinationURL != link.DestinationURL {
		t.Errorf("DestinationURL = %q, want %q", restored.DestinationURL, link.DestinationURL)
	}
	if restored.ExpiresAt == nil || !restored.ExpiresAt.Equal(expires) {
		t.Errorf("ExpiresAt = %v, want %v", restored.ExpiresAt, expires)
	}
	if !restored.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", restored.CreatedAt, created)
	}
}

func TestLink_CachedLinkNoExpiry(t *testing.T) {
	link := &Link{
		ID:             "link-1",
		DestinationURL: "https://example.com",
		CreatedAt:      time.Now(),
	}

	cached := link.ToCachedLink()
	if cached.ExpiresAt != "" {
		t.Errorf("ExpiresAt = %q, want empty", cached.ExpiresAt)
	}

	restored := cached.ToLink("abc12345")
	if restored.ExpiresAt != nil {
		t.Errorf("restored ExpiresAt = %v, want nil", restored.ExpiresAt)
	}
	if restored.IsExpired() {
		t.Error("link without expiry must never report expired")
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
