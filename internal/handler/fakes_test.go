package handler

import (
	"context"
	"sort"
	"sync"

	"github.com/snaplink/snaplink/internal/model"
	"github.com/snaplink/snaplink/internal/repository"
)

// fakeStore is an in-memory implementation of the service store interfaces
// for handler tests.
type fakeStore struct {
	mu     sync.Mutex
	links  map[string]*model.Link
	clicks []*model.Click
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: make(map[string]*model.Link)}
}

func (s *fakeStore) CreateLink(_ context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.links {
		if existing.ShortCode == link.ShortCode {
			return repository.ErrCodeTaken
		}
	}
	copied := *link
	s.links[link.ID] = &copied
	return nil
}

func (s *fakeStore) GetLinkByID(_ context.Context, id string) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[id]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}
	copied := *link
	return &copied, nil
}

func (s *fakeStore) GetLinkByCode(_ context.Context, shortCode string) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.links {
		if link.ShortCode == shortCode {
			copied := *link
			return &copied, nil
		}
	}
	return nil, repository.ErrLinkNotFound
}

func (s *fakeStore) ListLinks(_ context.Context, ownerID, _ string, page, limit int) ([]*model.Link, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var owned []*model.Link
	for _, link := range s.links {
		if link.OwnerID == ownerID {
			copied := *link
			owned = append(owned, &copied)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := int64(len(owned))
	start := (page - 1) * limit
	if start >= len(owned) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (s *fakeStore) UpdateLink(_ context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[link.ID]; !ok {
		return repository.ErrLinkNotFound
	}
	copied := *link
	s.links[link.ID] = &copied
	return nil
}

func (s *fakeStore) DeleteLink(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[id]; !ok {
		return repository.ErrLinkNotFound
	}
	delete(s.links, id)
	return nil
}

func (s *fakeStore) DeleteLinksByOwner(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, link := range s.links {
		if link.OwnerID == ownerID {
			delete(s.links, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeStore) CodeExists(_ context.Context, shortCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, link := range s.links {
		if link.ShortCode == shortCode {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) allClicks() []*model.Click {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Click, 0, len(s.clicks))
	for _, click := range s.clicks {
		copied := *click
		out = append(out, &copied)
	}
	return out
}

func (s *fakeStore) InsertClick(_ context.Context, click *model.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *click
	s.clicks = append(s.clicks, &copied)
	return nil
}

func (s *fakeStore) LinkClickSummary(_ context.Context, linkID string) (*model.LinkClickSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := &model.LinkClickSummary{
		DeviceSummary:  make(map[string]int64),
		BrowserSummary: make(map[string]int64),
		OSSummary:      make(map[string]int64),
	}
	for _, click := range s.clicks {
		if click.LinkID != linkID {
			continue
		}
		summary.TotalClicks++
		summary.DeviceSummary[string(click.DeviceType)]++
		summary.BrowserSummary[click.Browser]++
		summary.OSSummary[click.OS]++
	}
	return summary, nil
}

func (s *fakeStore) OwnerClickTotal(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, click := range s.clicks {
		if link, ok := s.links[click.LinkID]; ok && link.OwnerID == ownerID {
			total++
		}
	}
	return total, nil
}

func (s *fakeStore) OwnerDateCounts(_ context.Context, ownerID string) ([]model.DateClicks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int64)
	for _, click := range s.clicks {
		if link, ok := s.links[click.LinkID]; ok && link.OwnerID == ownerID {
			counts[click.ClickedAt.UTC().Format("01/02/2006")]++
		}
	}
	result := make([]model.DateClicks, 0, len(counts))
	for date, n := range counts {
		result = append(result, model.DateClicks{Date: date, Clicks: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

func (s *fakeStore) OwnerDeviceCounts(_ context.Context, ownerID string) (model.DeviceClicks, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var devices model.DeviceClicks
	for _, click := range s.clicks {
		link, ok := s.links[click.LinkID]
		if !ok || link.OwnerID != ownerID {
			continue
		}
		switch click.DeviceType {
		case model.DeviceMobile:
			devices.Mobile++
		case model.DeviceDesktop:
			devices.Desktop++
		case model.DeviceTablet:
			devices.Tablet++
		default:
			devices.Other++
		}
	}
	return devices, nil
}

func (s *fakeStore) ListOwnerClicks(_ context.Context, ownerID string, page, limit int) ([]*model.ClickDetail, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var details []*model.ClickDetail
	for _, click := range s.clicks {
		link, ok := s.links[click.LinkID]
		if !ok || link.OwnerID != ownerID {
			continue
		}
		details = append(details, &model.ClickDetail{
			ClickedAt:      click.ClickedAt,
			ShortURL:       link.ShortURL,
			DestinationURL: link.DestinationURL,
			SourceIP:       click.SourceIP,
			DeviceType:     click.DeviceType,
			Browser:        click.Browser,
			OS:             click.OS,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].ClickedAt.After(details[j].ClickedAt) })

	total := int64(len(details))
	start := (page - 1) * limit
	if start >= len(details) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(details) {
		end = len(details)
	}
	return details[start:end], total, nil
}
