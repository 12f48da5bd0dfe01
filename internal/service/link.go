package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/snaplink/snaplink/internal/metrics"
	"github.com/snaplink/snaplink/internal/model"
	"github.com/snaplink/snaplink/internal/repository"
	"github.com/snaplink/snaplink/internal/shortcode"
)

const (
	maxDestinationLength = 2048

	// maxCodeAttempts bounds the generate-and-commit retry loop. Ten
	// consecutive collisions over a 62^8 namespace means the namespace is
	// effectively saturated and the operation fails with
	// ErrCodeSpaceExhausted instead of looping forever.
	maxCodeAttempts = 10

	defaultPageSize = 10
	maxPageSize     = 100
)

// LinkService handles link management: create, list, edit, delete.
type LinkService struct {
	links   LinkStore
	cache   LinkCache
	baseURL string
	metrics metrics.Recorder
}

// NewLinkService creates a new LinkService.
func NewLinkService(links LinkStore, cache LinkCache, baseURL string, recorder metrics.Recorder) *LinkService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LinkService{
		links:   links,
		cache:   cache,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		metrics: recorder,
	}
}

// CreateLinkInput defines input for creating a link.
type CreateLinkInput struct {
	OwnerID        string
	DestinationURL string
	ShortCode      string // optional caller-chosen code; generated when empty
	ExpiresAt      *time.Time
	Remarks        string
}

// CreateLink validates the input and commits a new link with a globally
// unique short code. When the caller supplies no code, candidates are
// generated and retried against the store's unique index until one commits
// or the retries are exhausted.
func (s *LinkService) CreateLink(ctx context.Context, input CreateLinkInput) (*model.Link, error) {
	if err := s.validateDestination(input.DestinationURL); err != nil {
		return nil, err
	}

	if input.ExpiresAt != nil && !input.ExpiresAt.After(time.Now()) {
		return nil, ErrExpiresInPast
	}

	link := &model.Link{
		ID:             newID(),
		OwnerID:        input.OwnerID,
		DestinationURL: input.DestinationURL,
		Remarks:        input.Remarks,
		ExpiresAt:      input.ExpiresAt,
		CreatedAt:      time.Now().UTC(),
	}

	if input.ShortCode != "" {
		if err := shortcode.Validate(input.ShortCode); err != nil {
			return nil, ErrInvalidCode
		}
		link.ShortCode = input.ShortCode
		link.ShortURL = s.shortURL(input.ShortCode)

		if err := s.links.CreateLink(ctx, link); err != nil {
			if errors.Is(err, repository.ErrCodeTaken) {
				return nil, ErrCodeTaken
			}
			return nil, fmt.Errorf("failed to create link: %w", err)
		}

		// A redirect probed before the create may have left a negative
		// cache entry for this code; clear it so the link resolves now.
		s.invalidate(ctx, link.ShortCode)

		s.metrics.IncLinkCreated()
		return link, nil
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := shortcode.Generate()
		link.ShortCode = code
		link.ShortURL = s.shortURL(code)

		err := s.links.CreateLink(ctx, link)
		if err == nil {
			s.metrics.IncLinkCreated()
			return link, nil
		}
		if errors.Is(err, repository.ErrCodeTaken) {
			// Another writer committed this candidate first; the unique
			// index is the arbiter, so just draw again.
			s.metrics.IncCodeCollision()
			continue
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return nil, ErrCodeSpaceExhausted
}

// GetLink retrieves a link by ID, enforcing ownership.
func (s *LinkService) GetLink(ctx context.Context, ownerID, id string) (*model.Link, error) {
	link, err := s.loadOwnedLink(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// ListLinksInput defines input for listing links.
type ListLinksInput struct {
	OwnerID string
	Search  string
	Page    int
	Limit   int
}

// ListLinksOutput defines output for listing links.
type ListLinksOutput struct {
	Links      []*model.Link
	TotalLinks int64
	Page       int
	TotalPages int
}

// ListLinks retrieves one page of the owner's links, optionally filtered by
// a case-insensitive search across destination URL, short URL, and remarks.
func (s *LinkService) ListLinks(ctx context.Context, input ListLinksInput) (*ListLinksOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit <= 0 || input.Limit > maxPageSize {
		input.Limit = defaultPageSize
	}

	links, total, err := s.links.ListLinks(ctx, input.OwnerID, input.Search, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListLinksOutput{
		Links:      links,
		TotalLinks: total,
		Page:       input.Page,
		TotalPages: totalPages(total, input.Limit),
	}, nil
}

// UpdateLinkInput defines input for editing a link. Pointer fields are
// applied only when present; a nil ExpiresAt clears the expiration.
type UpdateLinkInput struct {
	OwnerID        string
	LinkID         string
	DestinationURL *string
	ShortCode      *string
	Remarks        *string
	ExpiresAt      *time.Time
}

// UpdateLink loads the link, enforces ownership, then validates and applies
// each patched field independently before committing.
func (s *LinkService) UpdateLink(ctx context.Context, input UpdateLinkInput) (*model.Link, error) {
	link, err := s.loadOwnedLink(ctx, input.OwnerID, input.LinkID)
	if err != nil {
		return nil, err
	}

	oldCode := link.ShortCode

	if input.DestinationURL != nil {
		if err := s.validateDestination(*input.DestinationURL); err != nil {
			return nil, err
		}
		link.DestinationURL = *input.DestinationURL
	}

	if input.ShortCode != nil && *input.ShortCode != link.ShortCode {
		code := *input.ShortCode
		if err := shortcode.Validate(code); err != nil {
			return nil, ErrInvalidCode
		}
		taken, err := s.links.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check short code: %w", err)
		}
		if taken {
			return nil, ErrCodeTaken
		}
		link.ShortCode = code
		link.ShortURL = s.shortURL(code)
	}

	if input.ExpiresAt != nil {
		if !input.ExpiresAt.After(time.Now()) {
			return nil, ErrExpiresInPast
		}
		link.ExpiresAt = input.ExpiresAt
	} else {
		link.ExpiresAt = nil
	}

	if input.Remarks != nil {
		link.Remarks = *input.Remarks
	}

	if err := s.links.UpdateLink(ctx, link); err != nil {
		if errors.Is(err, repository.ErrCodeTaken) {
			// Lost the race between the existence check and the commit.
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	s.metrics.IncLinkUpdated()
	s.invalidate(ctx, oldCode)
	if link.ShortCode != oldCode {
		s.invalidate(ctx, link.ShortCode)
	}

	return link, nil
}

// DeleteLink removes a link after an ownership check. The link's click
// history goes with it.
func (s *LinkService) DeleteLink(ctx context.Context, ownerID, id string) error {
	link, err := s.loadOwnedLink(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.links.DeleteLink(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}

	s.metrics.IncLinkDeleted()
	s.invalidate(ctx, link.ShortCode)

	return nil
}

// DeleteAllLinks removes every link the owner holds. Used for account
// teardown, where the external identity provider is dropping the user.
func (s *LinkService) DeleteAllLinks(ctx context.Context, ownerID string) (int64, error) {
	// Collect every short code before the rows go away; a code left warm
	// in the cache would keep resolving against a deleted link until its
	// TTL expires.
	var codes []string
	for page := 1; ; page++ {
		links, _, err := s.links.ListLinks(ctx, ownerID, "", page, maxPageSize)
		if err != nil {
			return 0, err
		}
		for _, link := range links {
			codes = append(codes, link.ShortCode)
		}
		if len(links) < maxPageSize {
			break
		}
	}

	deleted, err := s.links.DeleteLinksByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete owner links: %w", err)
	}

	for _, code := range codes {
		s.invalidate(ctx, code)
	}

	return deleted, nil
}

// BaseURL returns the configured base URL.
func (s *LinkService) BaseURL() string {
	return s.baseURL
}

// loadOwnedLink fetches a link and verifies the caller owns it.
func (s *LinkService) loadOwnedLink(ctx context.Context, ownerID, id string) (*model.Link, error) {
	link, err := s.links.GetLinkByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	if !link.IsOwnedBy(ownerID) {
		return nil, ErrForbidden
	}

	return link, nil
}

// validateDestination validates a destination URL: absolute, http or https,
// with a host, within the length cap.
func (s *LinkService) validateDestination(dest string) error {
	if dest == "" {
		return ErrInvalidDestination
	}

	if len(dest) > maxDestinationLength {
		return ErrURLTooLong
	}

	parsed, err := url.Parse(dest)
	if err != nil {
		return ErrInvalidDestination
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidDestination
	}

	if parsed.Host == "" {
		return ErrInvalidDestination
	}

	return nil
}

// shortURL derives the public short URL for a code.
func (s *LinkService) shortURL(code string) string {
	return s.baseURL + "/" + code
}

// invalidate drops a short code from the resolution cache, if caching is on.
func (s *LinkService) invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	// Eventual consistency is acceptable; a stale entry ages out via TTL.
	_ = s.cache.DeleteLink(ctx, code)
}

// totalPages computes ceil(total / limit) for pagination metadata.
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
