package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snaplink/snaplink/internal/metrics"
	"github.com/snaplink/snaplink/internal/model"
	"github.com/snaplink/snaplink/internal/repository"
	"github.com/snaplink/snaplink/internal/useragent"
)

// RedirectService resolves short codes on the redirect path and records one
// click per successful resolution. Each call touches exactly one link.
type RedirectService struct {
	links   LinkStore
	clicks  ClickStore
	cache   LinkCache
	metrics metrics.Recorder
}

// NewRedirectService creates a new RedirectService.
func NewRedirectService(links LinkStore, clicks ClickStore, cache LinkCache, recorder metrics.Recorder) *RedirectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RedirectService{
		links:   links,
		clicks:  clicks,
		cache:   cache,
		metrics: recorder,
	}
}

// ResolveAndRecord resolves a short code to its link, appends a click, and
// returns the link for the caller to redirect to.
//
// An unknown code yields ErrLinkNotFound. A code whose link has expired
// yields ErrLinkExpired and appends nothing; expiration is checked only
// here, never re-validated elsewhere. The click append is synchronous:
// when ResolveAndRecord returns successfully, the click is committed.
func (s *RedirectService) ResolveAndRecord(ctx context.Context, shortCode, sourceIP, rawUserAgent string) (*model.Link, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveRedirectDuration(time.Since(start))
	}()

	link, err := s.resolve(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if link.IsExpired() {
		// Inert for redirects, but still queryable for management and
		// analytics - so no click and no deletion, just eviction.
		if s.cache != nil {
			_ = s.cache.DeleteLink(ctx, shortCode)
		}
		s.metrics.IncRedirectOutcome("expired")
		return nil, ErrLinkExpired
	}

	client := useragent.Classify(rawUserAgent)

	click := &model.Click{
		ID:         newID(),
		LinkID:     link.ID,
		SourceIP:   sourceIP,
		UserAgent:  rawUserAgent,
		DeviceType: client.DeviceType,
		Browser:    client.Browser,
		OS:         client.OS,
		ClickedAt:  time.Now().UTC(),
	}

	if err := s.clicks.InsertClick(ctx, click); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			// The link was deleted between resolve and the click append,
			// usually off a stale cache entry. Treat the code as unknown
			// and make sure the cache agrees.
			if s.cache != nil {
				_ = s.cache.DeleteLink(ctx, shortCode)
				_ = s.cache.SetNegativeCache(ctx, shortCode)
			}
			s.metrics.IncRedirectOutcome("not_found")
			return nil, ErrLinkNotFound
		}
		s.metrics.IncRedirectOutcome("error")
		return nil, fmt.Errorf("failed to record click: %w", err)
	}

	s.metrics.IncClickRecorded()
	s.metrics.IncRedirectOutcome("success")

	return link, nil
}

// resolve looks up a link by short code, cache first.
func (s *RedirectService) resolve(ctx context.Context, shortCode string) (*model.Link, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLink(ctx, shortCode)
		if err == nil {
			s.metrics.IncRedirectCacheHit()
			return cached.ToLink(shortCode), nil
		}

		s.metrics.IncRedirectCacheMiss()

		if negative, _ := s.cache.IsNegativelyCached(ctx, shortCode); negative {
			s.metrics.IncRedirectOutcome("not_found")
			return nil, ErrLinkNotFound
		}
	}

	link, err := s.links.GetLinkByCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			if s.cache != nil {
				_ = s.cache.SetNegativeCache(ctx, shortCode)
			}
			s.metrics.IncRedirectOutcome("not_found")
			return nil, ErrLinkNotFound
		}
		s.metrics.IncRedirectOutcome("error")
		return nil, err
	}

	if s.cache != nil {
		// Backfill; a failed write only costs the next lookup a DB trip.
		_ = s.cache.SetLink(ctx, shortCode, link)
	}

	return link, nil
}
