package dto

import (
	"nexuslink/internal/domain/models"
	"time"
)

// Request
type (
	ShortenRequest struct {
		URL string `json:"url"`
	}

	RecordEventRequest struct {
		EventType string         `json:"event_type"`
		LinkID    string         `json:"link_id,omitempty"`
		Payload   map[string]any `json:"payload,omitempty"`
	}
)

// Response
type (
	ShortenResponse struct {
		Result string `json:"result"`
		Code   string `json:"code"`
	}

	LinkResponse struct {
		ID          int64     `json:"id"`
		Code        string    `json:"code"`
		Destination string    `json:"destination"`
		ShortURL    string    `json:"short_url"`
		CreatedAt   time.Time `json:"created_at"`
		Clicks      int       `json:"clicks"`
	}

	EventResponse struct {
		ID         int64          `json:"id"`
		UserID     string         `json:"user_id,omitempty"`
		LinkID     string         `json:"link_id,omitempty"`
		EventType  string         `json:"event_type"`
		OccurredAt time.Time      `json:"occurred_at"`
		Payload    map[string]any `json:"payload"`
	}

	DashboardResponse struct {
		TotalClicks int                   `json:"total_clicks"`
		PeakHour    string                `json:"peak_hour"`
		Daily       []models.DailyCount   `json:"daily"`
		Devices     []models.DeviceCount  `json:"devices"`
		Browsers    []models.BrowserCount `json:"browsers"`
		Sources     []models.SourceCount  `json:"sources"`
		Hourly      []models.HourlyCount  `json:"hourly"`
		Links       []LinkResponse        `json:"links"`
	}

	CodeResponse struct {
		Code string `json:"code"`
	}

	RegisterResponse struct {
		UserID    string    `json:"user_id"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)

// Domain → Response
func ShortenResponseFromDomain(link models.Link, shortURL string) ShortenResponse {
	return ShortenResponse{
		Result: shortURL,
		Code:   link.Code,
	}
}

func LinkResponseFromSummary(s models.LinkSummary) LinkResponse {
	return LinkResponse{
		ID:          s.Link.ID,
		Code:        s.Link.Code,
		Destination: s.Link.Destination,
		ShortURL:    s.ShortURL,
		CreatedAt:   s.Link.CreatedAt,
		Clicks:      s.Clicks,
	}
}

func EventResponseFromDomain(e models.Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		LinkID:     e.LinkID,
		EventType:  e.EventType,
		OccurredAt: e.OccurredAt,
		Payload:    e.Payload,
	}
}

// DashboardResponseFromDomain отдаёт пустые массивы вместо null, графикам так проще
func DashboardResponseFromDomain(d models.Dashboard) DashboardResponse {
	links := make([]LinkResponse, 0, len(d.Links))
	for _, s := range d.Links {
		links = append(links, LinkResponseFromSummary(s))
	}

	return DashboardResponse{
		TotalClicks: d.TotalClicks,
		PeakHour:    d.PeakHour,
		Daily:       nonNil(d.Daily),
		Devices:     nonNil(d.Devices),
		Browsers:    nonNil(d.Browsers),
		Sources:     nonNil(d.Sources),
		Hourly:      nonNil(d.Hourly),
		Links:       links,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
