package aggregation

import (
	"nexuslink/internal/domain/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uaEvents(agents ...string) []models.Event {
	events := make([]models.Event, len(agents))
	for i, ua := range agents {
		events[i] = models.Event{
			ID:         int64(i + 1),
			EventType:  models.EventTypeLinkClicked,
			OccurredAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			Payload:    map[string]any{"userAgent": ua},
		}
	}
	return events
}

func referrerEvents(referrers ...any) []models.Event {
	events := make([]models.Event, len(referrers))
	for i, ref := range referrers {
		events[i] = models.Event{ID: int64(i + 1), Payload: map[string]any{"referrer": ref}}
	}
	return events
}

func TestByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		events []models.Event
		want   []models.DailyCount
	}{
		{
			name:   "empty input",
			events: nil,
			want:   []models.DailyCount{},
		},
		{
			name: "two days ascending regardless of input order",
			events: []models.Event{
				{OccurredAt: day2.Add(1 * time.Hour)},
				{OccurredAt: day1.Add(2 * time.Hour)},
				{OccurredAt: day1.Add(23 * time.Hour)},
				{OccurredAt: day2.Add(5 * time.Hour)},
				{OccurredAt: day1},
			},
			want: []models.DailyCount{
				{Date: "2025-03-01", Count: 3},
				{Date: "2025-03-02", Count: 2},
			},
		},
		{
			name: "non-UTC timestamps use the UTC calendar day",
			events: []models.Event{
				// 2025-03-02 01:30 +03:00 == 2025-03-01 22:30 UTC
				{OccurredAt: time.Date(2025, 3, 2, 1, 30, 0, 0, time.FixedZone("MSK", 3*3600))},
			},
			want: []models.DailyCount{{Date: "2025-03-01", Count: 1}},
		},
		{
			name: "no gap filling",
			events: []models.Event{
				{OccurredAt: day1},
				{OccurredAt: day1.AddDate(0, 0, 3)},
			},
			want: []models.DailyCount{
				{Date: "2025-03-01", Count: 1},
				{Date: "2025-03-04", Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByDay(tt.events))
		})
	}
}

func TestByDevice(t *testing.T) {
	events := uaEvents("Chrome mobile", "Safari desktop", "Chrome desktop")
	assert.Equal(t, []models.DeviceCount{
		{Device: DeviceDesktop, Count: 2},
		{Device: DeviceMobile, Count: 1},
	}, ByDevice(events))

	t.Run("classification rules", func(t *testing.T) {
		got := ByDevice(uaEvents(
			"Mozilla/5.0 (Linux; Android 14)",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)",
			"Mozilla/5.0 (iPad; CPU OS 17_0)",
			"Some TABLET browser",
			"Mozilla/5.0 (X11; Linux x86_64)",
		))
		assert.Equal(t, []models.DeviceCount{
			{Device: DeviceMobile, Count: 2},
			{Device: DeviceTablet, Count: 2},
			{Device: DeviceDesktop, Count: 1},
		}, got)
	})

	t.Run("events without userAgent are excluded", func(t *testing.T) {
		events := append(uaEvents("Chrome desktop"),
			models.Event{Payload: map[string]any{}},
			models.Event{Payload: nil},
			models.Event{Payload: map[string]any{"userAgent": 42}},
			models.Event{Payload: map[string]any{"userAgent": ""}},
		)
		got := ByDevice(events)
		require.Len(t, got, 1)
		assert.Equal(t, models.DeviceCount{Device: DeviceDesktop, Count: 1}, got[0])
	})
}

func TestByBrowser(t *testing.T) {
	events := uaEvents("Chrome mobile", "Safari desktop", "Chrome desktop")
	assert.Equal(t, []models.BrowserCount{
		{Browser: BrowserChrome, Count: 2},
		{Browser: BrowserSafari, Count: 1},
	}, ByBrowser(events))

	t.Run("priority order", func(t *testing.T) {
		got := ByBrowser(uaEvents(
			"Mozilla/5.0 AppleWebKit Chrome/120 Safari/537 Edg/120",
			"Mozilla/5.0 Firefox/121",
			"Edge mobile",
			"curl/8.0",
		))
		assert.Equal(t, []models.BrowserCount{
			{Browser: BrowserChrome, Count: 1},
			{Browser: BrowserEdge, Count: 1},
			{Browser: BrowserFirefox, Count: 1},
			{Browser: BrowserOther, Count: 1},
		}, got)
	})
}

func TestBySource(t *testing.T) {
	tests := []struct {
		name   string
		events []models.Event
		want   []models.SourceCount
	}{
		{
			name:   "known, direct and unknown",
			events: referrerEvents("google.com", "Direct", "unknown.biz"),
			want: []models.SourceCount{
				{Source: SourceDirect, Count: 1},
				{Source: SourceGoogle, Count: 1},
				{Source: SourceOther, Count: 1},
			},
		},
		{
			name: "missing and empty referrer default to Direct",
			events: append(referrerEvents(""),
				models.Event{Payload: map[string]any{}},
				models.Event{},
			),
			want: []models.SourceCount{{Source: SourceDirect, Count: 3}},
		},
		{
			name:   "every known domain",
			events: referrerEvents("https://www.facebook.com/", "https://t.co via twitter.com", "https://www.linkedin.com/feed", "https://www.Google.de/"),
			want: []models.SourceCount{
				{Source: SourceFacebook, Count: 1},
				{Source: SourceGoogle, Count: 1},
				{Source: SourceLinkedIn, Count: 1},
				{Source: SourceTwitter, Count: 1},
			},
		},
		{
			name:   "malformed referrer falls back to Other",
			events: referrerEvents(17, true),
			want:   []models.SourceCount{{Source: SourceOther, Count: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BySource(tt.events)
			assert.Equal(t, tt.want, got)

			total := 0
			for _, s := range got {
				total += s.Count
			}
			assert.Equal(t, len(tt.events), total)
		})
	}
}

func TestByHour(t *testing.T) {
	t.Run("empty input has 24 zero buckets", func(t *testing.T) {
		got := ByHour(nil, time.UTC)
		require.Len(t, got, 24)
		for h, row := range got {
			assert.Equal(t, HourLabel(h), row.Hour)
			assert.Zero(t, row.Count)
		}
		assert.Equal(t, "0:00", got[0].Hour)
		assert.Equal(t, "23:00", got[23].Hour)
	})

	t.Run("uses the given location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*3600)
		events := []models.Event{
			{OccurredAt: time.Date(2025, 3, 1, 22, 15, 0, 0, time.UTC)},
			{OccurredAt: time.Date(2025, 3, 1, 22, 45, 0, 0, time.UTC)},
			{OccurredAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
		}
		got := ByHour(events, loc)
		require.Len(t, got, 24)
		assert.Equal(t, 2, got[0].Count)
		assert.Equal(t, 1, got[11].Count)
		assert.Equal(t, "0:00", PeakHour(got))
	})
}

func TestPeakHour(t *testing.T) {
	tests := []struct {
		name   string
		hourly []models.HourlyCount
		want   string
	}{
		{name: "empty", hourly: nil, want: ""},
		{name: "all zero picks first", hourly: ByHour(nil, time.UTC), want: "0:00"},
		{
			name:   "first occurrence wins ties",
			hourly: []models.HourlyCount{{Hour: "0:00", Count: 1}, {Hour: "1:00", Count: 4}, {Hour: "2:00", Count: 4}, {Hour: "3:00", Count: 2}},
			want:   "1:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeakHour(tt.hourly))
		})
	}
}

func TestClickCount(t *testing.T) {
	events := []models.Event{
		{EventType: models.EventTypeLinkClicked, Payload: map[string]any{"link_id": "1"}},
		{EventType: models.EventTypeLinkClicked, Payload: map[string]any{"link_id": "1"}},
		{EventType: models.EventTypeLinkClicked, Payload: map[string]any{"link_id": "2"}},
		// числовой link_id не считается
		{EventType: models.EventTypeLinkClicked, Payload: map[string]any{"link_id": 1}},
		{EventType: "demo_dashboard_clicked", Payload: map[string]any{"link_id": "1"}},
		{EventType: models.EventTypeLinkClicked},
	}

	assert.Equal(t, 2, ClickCount(events, 1))
	assert.Equal(t, 1, ClickCount(events, 2))
	assert.Equal(t, 0, ClickCount(events, 3))
	assert.Equal(t, map[string]int{"1": 2, "2": 1}, ClickCounts(events))
}

func TestAggregations_IdempotentAndNonMutating(t *testing.T) {
	events := append(uaEvents("Chrome mobile", "Firefox desktop", "iPad Safari"),
		referrerEvents("google.com", "Direct")...)
	snapshot := make([]models.Event, len(events))
	copy(snapshot, events)

	assert.Equal(t, ByDay(events), ByDay(events))
	assert.Equal(t, ByDevice(events), ByDevice(events))
	assert.Equal(t, ByBrowser(events), ByBrowser(events))
	assert.Equal(t, BySource(events), BySource(events))
	assert.Equal(t, ByHour(events, time.UTC), ByHour(events, time.UTC))
	assert.Equal(t, snapshot, events)

	reversed := make([]models.Event, len(events))
	for i := range events {
		reversed[len(events)-1-i] = events[i]
	}
	assert.Equal(t, ByDevice(events), ByDevice(reversed))
	assert.Equal(t, ByBrowser(events), ByBrowser(reversed))
	assert.Equal(t, BySource(events), BySource(reversed))
}

func TestAggregations_SumInvariant(t *testing.T) {
	events := append(uaEvents("Chrome mobile", "Safari desktop", "Edge mobile", "iPad", "Opera"),
		models.Event{Payload: map[string]any{"referrer": "twitter.com"}})

	classifiable := 5

	devices := 0
	for _, d := range ByDevice(events) {
		devices += d.Count
	}
	browsers := 0
	for _, b := range ByBrowser(events) {
		browsers += b.Count
	}
	hours := 0
	for _, h := range ByHour(events, time.UTC) {
		hours += h.Count
	}

	assert.Equal(t, classifiable, devices)
	assert.Equal(t, classifiable, browsers)
	assert.Equal(t, len(events), hours)
}
