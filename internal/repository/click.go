package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/snaplink/snaplink/internal/model"
)

// InsertClick appends a single click to a link's history. Each insert is an
// independent row, so concurrent redirects against the same link never lose
// a click and never contend across links.
func (r *Repository) InsertClick(ctx context.Context, click *model.Click) error {
	query := `
		INSERT INTO clicks (id, link_id, source_ip, user_agent, device_type, browser, os, clicked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		click.ID,
		click.LinkID,
		click.SourceIP,
		click.UserAgent,
		click.DeviceType,
		click.Browser,
		click.OS,
		click.ClickedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			// The parent link is gone; a concurrent delete won the race.
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to insert click: %w", err)
	}

	return nil
}

// ListClicksByLink returns a link's full click history in insertion order.
func (r *Repository) ListClicksByLink(ctx context.Context, linkID string) ([]*model.Click, error) {
	query := `
		SELECT id, link_id, source_ip, user_agent, device_type, browser, os, clicked_at
		FROM clicks
		WHERE link_id = $1
		ORDER BY clicked_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}
	defer rows.Close()

	var clicks []*model.Click
	for rows.Next() {
		var c model.Click
		if err := rows.Scan(&c.ID, &c.LinkID, &c.SourceIP, &c.UserAgent, &c.DeviceType, &c.Browser, &c.OS, &c.ClickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		clicks = append(clicks, &c)
	}

	return clicks, rows.Err()
}

// LinkClickSummary streams one pass over a link's clicks and accumulates the
// total plus the device/browser/OS frequency tables. Every click carries
// non-empty classifier values, so no bucket key is ever absent.
func (r *Repository) LinkClickSummary(ctx context.Context, linkID string) (*model.LinkClickSummary, error) {
	query := `SELECT device_type, browser, os FROM clicks WHERE link_id = $1`

	rows, err := r.pool.Query(ctx, query, linkID)
	if err != nil {
		return nil, fmt.Errorf("failed to query click summary: %w", err)
	}
	defer rows.Close()

	summary := &model.LinkClickSummary{
		DeviceSummary:  make(map[string]int64),
		BrowserSummary: make(map[string]int64),
		OSSummary:      make(map[string]int64),
	}

	for rows.Next() {
		var device, browser, os string
		if err := rows.Scan(&device, &browser, &os); err != nil {
			return nil, fmt.Errorf("failed to scan click summary row: %w", err)
		}
		summary.TotalClicks++
		summary.DeviceSummary[device]++
		summary.BrowserSummary[browser]++
		summary.OSSummary[os]++
	}

	return summary, rows.Err()
}

// OwnerClickTotal counts all clicks across an owner's links.
func (r *Repository) OwnerClickTotal(ctx context.Context, ownerID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.owner_id = $1
	`

	var total int64
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count owner clicks: %w", err)
	}

	return total, nil
}

// OwnerDateCounts buckets an owner's clicks by UTC calendar day, newest day
// first. The day comes back as a timestamp; formatting is the caller's job.
func (r *Repository) OwnerDateCounts(ctx context.Context, ownerID string) ([]model.DateClicks, error) {
	query := `
		SELECT date_trunc('day', c.clicked_at AT TIME ZONE 'UTC') AS day, COUNT(*)
		FROM clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.owner_id = $1
		GROUP BY day
		ORDER BY day DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query date counts: %w", err)
	}
	defer rows.Close()

	var counts []model.DateClicks
	for rows.Next() {
		var day time.Time
		var n int64
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("failed to scan date count: %w", err)
		}
		counts = append(counts, model.DateClicks{
			Date:   day.Format("01/02/2006"),
			Clicks: n,
		})
	}

	return counts, rows.Err()
}

// OwnerDeviceCounts collapses an owner's clicks into the four fixed device
// buckets. Values outside Mobile/Desktop/Tablet count as Other.
func (r *Repository) OwnerDeviceCounts(ctx context.Context, ownerID string) (model.DeviceClicks, error) {
	query := `
		SELECT c.device_type, COUNT(*)
		FROM clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.owner_id = $1
		GROUP BY c.device_type
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return model.DeviceClicks{}, fmt.Errorf("failed to query device counts: %w", err)
	}
	defer rows.Close()

	var counts model.DeviceClicks
	for rows.Next() {
		var device string
		var n int64
		if err := rows.Scan(&device, &n); err != nil {
			return model.DeviceClicks{}, fmt.Errorf("failed to scan device count: %w", err)
		}
		switch model.DeviceType(device) {
		case model.DeviceMobile:
			counts.Mobile += n
		case model.DeviceDesktop:
			counts.Desktop += n
		case model.DeviceTablet:
			counts.Tablet += n
		default:
			counts.Other += n
		}
	}

	return counts, rows.Err()
}

// ListOwnerClicks flattens the clicks across all of an owner's links into one
// reverse-chronological page, each entry annotated with its parent link's
// addresses, plus the total count for pagination metadata. Pages are 1-based.
func (r *Repository) ListOwnerClicks(ctx context.Context, ownerID string, page, limit int) ([]*model.ClickDetail, int64, error) {
	if page < 1 {
		page = 1
	}

	total, err := r.OwnerClickTotal(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT c.clicked_at, l.short_url, l.destination_url, c.source_ip, c.device_type, c.browser, c.os
		FROM clicks c
		JOIN links l ON l.id = c.link_id
		WHERE l.owner_id = $1
		ORDER BY c.clicked_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list owner clicks: %w", err)
	}
	defer rows.Close()

	var clicks []*model.ClickDetail
	for rows.Next() {
		var d model.ClickDetail
		if err := rows.Scan(&d.ClickedAt, &d.ShortURL, &d.DestinationURL, &d.SourceIP, &d.DeviceType, &d.Browser, &d.OS); err != nil {
			return nil, 0, fmt.Errorf("failed to scan click detail: %w", err)
		}
		clicks = append(clicks, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating owner clicks: %w", err)
	}

	return clicks, total, nil
}
