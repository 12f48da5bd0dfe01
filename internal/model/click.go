// Package model defines domain entities for the application.
package model

import "time"

// DeviceType is the canonical device bucket derived from a user agent.
type DeviceType string

// Canonical device buckets. Aggregation collapses anything outside the first
// three into DeviceOther.
const (
	DeviceMobile  DeviceType = "Mobile"
	DeviceDesktop DeviceType = "Desktop"
	DeviceTablet  DeviceType = "Tablet"
	DeviceOther   DeviceType = "Other"
)

// UnknownValue is the sentinel used when the classifier cannot determine a
// browser or operating system. Aggregation relies on every click carrying a
// non-empty value, never an absent field.
const UnknownValue = "Unknown"

// Click is one recorded resolution event against a link.
// Clicks are append-only: once recorded they are never mutated or removed.
type Click struct {
	ID         string     `json:"id"`
	LinkID     string     `json:"link_id"`
	SourceIP   string     `json:"source_ip"`
	UserAgent  string     `json:"user_agent"`
	DeviceType DeviceType `json:"device_type"`
	Browser    string     `json:"browser"`
	OS         string     `json:"os"`
	ClickedAt  time.Time  `json:"clicked_at"`
}

// LinkClickSummary aggregates the click history of a single link.
type LinkClickSummary struct {
	TotalClicks    int64            `json:"total_clicks"`
	DeviceSummary  map[string]int64 `json:"device_summary"`
	BrowserSummary map[string]int64 `json:"browser_summary"`
	OSSummary      map[string]int64 `json:"os_summary"`
}

// DateClicks is one calendar-day bucket of an owner's clicks.
// Date uses the MM/DD/YYYY format the dashboard renders.
type DateClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// DeviceClicks holds the owner dashboard's fixed device buckets.
// All four buckets are always present, zero-valued when empty.
type DeviceClicks struct {
	Mobile  int64 `json:"mobile"`
	Desktop int64 `json:"desktop"`
	Tablet  int64 `json:"tablet"`
	Other   int64 `json:"other"`
}

// Total returns the sum across all device buckets.
func (d DeviceClicks) Total() int64 {
	return d.Mobile + d.Desktop + d.Tablet + d.Other
}

// DashboardStats is the per-owner aggregate across all of the owner's links.
type DashboardStats struct {
	TotalClicks    int64        `json:"total_clicks"`
	DateWiseClicks []DateClicks `json:"date_wise_clicks"`
	DeviceClicks   DeviceClicks `json:"device_wise_clicks"`
}

// ClickDetail is one entry of the owner's flattened click feed, annotated
// with its parent link's addresses.
type ClickDetail struct {
	ClickedAt      time.Time  `json:"clicked_at"`
	ShortURL       string     `json:"short_url"`
	DestinationURL string     `json:"destination_url"`
	SourceIP       string     `json:"source_ip"`
	DeviceType     DeviceType `json:"device_type"`
	Browser        string     `json:"browser"`
	OS             string     `json:"os"`
}
