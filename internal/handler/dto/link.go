// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/snaplink/snaplink/internal/model"
)

// CreateLinkRequest represents the request body for creating a link.
type CreateLinkRequest struct {
	DestinationURL string     `json:"destination_url"`
	ShortCode      string     `json:"short_code,omitempty"`
	Expiration     *time.Time `json:"expiration,omitempty"`
	Remarks        string     `json:"remarks,omitempty"`
}

// UpdateLinkRequest represents the request body for replacing a link's
// editable fields. Omitting expiration clears any existing expiration.
type UpdateLinkRequest struct {
	DestinationURL *string    `json:"destination_url,omitempty"`
	ShortCode      *string    `json:"short_code,omitempty"`
	Expiration     *time.Time `json:"expiration,omitempty"`
	Remarks        *string    `json:"remarks,omitempty"`
}

// LinkResponse represents a link in API responses.
type LinkResponse struct {
	ID             string     `json:"id"`
	ShortCode      string     `json:"short_code"`
	ShortURL       string     `json:"short_url"`
	DestinationURL string     `json:"destination_url"`
	Remarks        string     `json:"remarks,omitempty"`
	Expiration     *time.Time `json:"expiration,omitempty"`
	Status         string     `json:"status"`
	ClickCount     int64      `json:"click_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LinkListResponse represents a paginated list of links.
type LinkListResponse struct {
	Data       []LinkResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination provides page-number pagination info.
type Pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

// DashboardStatsResponse represents the owner-wide analytics summary.
type DashboardStatsResponse struct {
	TotalClicks    int64              `json:"total_clicks"`
	DateWiseClicks []model.DateClicks `json:"date_wise_clicks"`
	DeviceClicks   model.DeviceClicks `json:"device_wise_clicks"`
}

// LinkSummaryResponse represents a single link's click breakdown.
type LinkSummaryResponse struct {
	LinkID         string           `json:"link_id"`
	TotalClicks    int64            `json:"total_clicks"`
	DeviceSummary  map[string]int64 `json:"device_summary"`
	BrowserSummary map[string]int64 `json:"browser_summary"`
	OSSummary      map[string]int64 `json:"os_summary"`
}

// ClickFeedResponse represents a page of the owner's click history.
type ClickFeedResponse struct {
	Data       []model.ClickDetail `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// DeleteAllResponse reports how many links an account teardown removed.
type DeleteAllResponse struct {
	DeletedLinks int64 `json:"deleted_links"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToLinkResponse converts a Link model to LinkResponse DTO.
func ToLinkResponse(link *model.Link) *LinkResponse {
	return &LinkResponse{
		ID:             link.ID,
		ShortCode:      link.ShortCode,
		ShortURL:       link.ShortURL,
		DestinationURL: link.DestinationURL,
		Remarks:        link.Remarks,
		Expiration:     link.ExpiresAt,
		Status:         string(link.Status()),
		ClickCount:     link.ClickCount,
		CreatedAt:      link.CreatedAt,
	}
}

// ToLinkListResponse converts a page of Link models to LinkListResponse.
func ToLinkListResponse(links []*model.Link, page, totalPages int, totalItems int64) *LinkListResponse {
	responses := make([]LinkResponse, len(links))
	for i, link := range links {
		responses[i] = *ToLinkResponse(link)
	}
	return &LinkListResponse{
		Data: responses,
		Pagination: Pagination{
			Page:       page,
			TotalPages: totalPages,
			TotalItems: totalItems,
		},
	}
}

// ToClickFeedResponse converts a page of click details to ClickFeedResponse.
func ToClickFeedResponse(clicks []*model.ClickDetail, page, totalPages int, totalItems int64) *ClickFeedResponse {
	data := make([]model.ClickDetail, len(clicks))
	for i, click := range clicks {
		data[i] = *click
	}
	return &ClickFeedResponse{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			TotalPages: totalPages,
			TotalItems: totalItems,
		},
	}
}
