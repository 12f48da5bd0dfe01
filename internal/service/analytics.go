package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/snaplink/snaplink/internal/model"
	"github.com/snaplink/snaplink/internal/repository"
)

const defaultFeedPageSize = 20

// AnalyticsService serves aggregate views over the click log. All reads are
// computed from the clicks recorded at redirect time; nothing is
// pre-aggregated.
type AnalyticsService struct {
	links  LinkStore
	clicks ClickStore
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(links LinkStore, clicks ClickStore) *AnalyticsService {
	return &AnalyticsService{
		links:  links,
		clicks: clicks,
	}
}

// LinkSummary returns the per-link click breakdown by device, browser and
// operating system. The link must belong to ownerID.
func (s *AnalyticsService) LinkSummary(ctx context.Context, ownerID, linkID string) (*model.LinkClickSummary, error) {
	link, err := s.links.GetLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to load link: %w", err)
	}
	if !link.IsOwnedBy(ownerID) {
		return nil, ErrForbidden
	}

	summary, err := s.clicks.LinkClickSummary(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize clicks: %w", err)
	}
	return summary, nil
}

// DashboardStats returns the owner-wide totals: overall click count, clicks
// bucketed per calendar day (most recent day first), and the fixed
// device-category breakdown.
func (s *AnalyticsService) DashboardStats(ctx context.Context, ownerID string) (*model.DashboardStats, error) {
	total, err := s.clicks.OwnerClickTotal(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count clicks: %w", err)
	}

	dates, err := s.clicks.OwnerDateCounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket clicks by date: %w", err)
	}

	devices, err := s.clicks.OwnerDeviceCounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket clicks by device: %w", err)
	}

	return &model.DashboardStats{
		TotalClicks:    total,
		DateWiseClicks: dates,
		DeviceClicks:   devices,
	}, nil
}

// ClickFeedOutput is a page of the owner's flattened click history.
type ClickFeedOutput struct {
	Clicks      []*model.ClickDetail
	TotalClicks int64
	Page        int
	TotalPages  int
}

// ClickFeed returns the owner's clicks across all links, newest first.
func (s *AnalyticsService) ClickFeed(ctx context.Context, ownerID string, page, limit int) (*ClickFeedOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	clicks, total, err := s.clicks.ListOwnerClicks(ctx, ownerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}

	return &ClickFeedOutput{
		Clicks:      clicks,
		TotalClicks: total,
		Page:        page,
		TotalPages:  totalPages(total, limit),
	}, nil
}
