// Package aggregation turns a window of raw events into chart-ready summaries.
// Every function is pure: the input slice is never modified and the output
// does not depend on the order of the input.
package aggregation

import (
	"fmt"
	"nexuslink/internal/domain/models"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"

	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOther   = "Other"

	SourceDirect   = "Direct"
	SourceGoogle   = "Google"
	SourceFacebook = "Facebook"
	SourceTwitter  = "Twitter"
	SourceLinkedIn = "LinkedIn"
	SourceOther    = "Other"

	payloadUserAgent = "userAgent"
	payloadReferrer  = "referrer"
	payloadLinkID    = "link_id"

	dayLayout   = "2006-01-02"
	hoursPerDay = 24
)

type rule struct {
	label   string
	needles []string
}

// порядок важен: побеждает первое совпадение
var (
	deviceRules = []rule{
		{DeviceMobile, []string{"mobile", "android", "iphone"}},
		{DeviceTablet, []string{"tablet", "ipad"}},
	}
	browserRules = []rule{
		{BrowserChrome, []string{"chrome"}},
		{BrowserFirefox, []string{"firefox"}},
		{BrowserSafari, []string{"safari"}},
		{BrowserEdge, []string{"edge"}},
	}
	sourceRules = []rule{
		{SourceGoogle, []string{"google"}},
		{SourceFacebook, []string{"facebook"}},
		{SourceTwitter, []string{"twitter"}},
		{SourceLinkedIn, []string{"linkedin"}},
	}
)

func classify(value string, rules []rule, fallback string) string {
	value = strings.ToLower(value)
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(value, n) {
				return r.label
			}
		}
	}
	return fallback
}

// userAgent returns the event's user agent; events without a non-empty string
// userAgent are not classifiable by device or browser.
func userAgent(e models.Event) (string, bool) {
	ua, ok := e.PayloadString(payloadUserAgent)
	if !ok || ua == "" {
		return "", false
	}
	return ua, true
}

// ByDay groups events by the UTC calendar day of OccurredAt, ascending.
// Days without events are not emitted.
func ByDay(events []models.Event) []models.DailyCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.OccurredAt.UTC().Format(dayLayout)]++
	}

	result := make([]models.DailyCount, 0, len(counts))
	for date, count := range counts {
		result = append(result, models.DailyCount{Date: date, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// ByDevice classifies events by payload.userAgent. Events without a userAgent
// are left out of every bucket.
func ByDevice(events []models.Event) []models.DeviceCount {
	counts := make(map[string]int)
	for _, e := range events {
		ua, ok := userAgent(e)
		if !ok {
			continue
		}
		counts[classify(ua, deviceRules, DeviceDesktop)]++
	}

	result := make([]models.DeviceCount, 0, len(counts))
	for _, kv := range sortedCounts(counts) {
		result = append(result, models.DeviceCount{Device: kv.label, Count: kv.count})
	}
	return result
}

// ByBrowser classifies events by payload.userAgent with the same
// classifiability predicate as ByDevice.
func ByBrowser(events []models.Event) []models.BrowserCount {
	counts := make(map[string]int)
	for _, e := range events {
		ua, ok := userAgent(e)
		if !ok {
			continue
		}
		counts[classify(ua, browserRules, BrowserOther)]++
	}

	result := make([]models.BrowserCount, 0, len(counts))
	for _, kv := range sortedCounts(counts) {
		result = append(result, models.BrowserCount{Browser: kv.label, Count: kv.count})
	}
	return result
}

// BySource counts every event by traffic source derived from payload.referrer.
func BySource(events []models.Event) []models.SourceCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[source(e)]++
	}

	result := make([]models.SourceCount, 0, len(counts))
	for _, kv := range sortedCounts(counts) {
		result = append(result, models.SourceCount{Source: kv.label, Count: kv.count})
	}
	return result
}

func source(e models.Event) string {
	raw, present := e.Payload[payloadReferrer]
	if !present || raw == nil {
		return SourceDirect
	}
	referrer, ok := raw.(string)
	if !ok {
		return SourceOther
	}
	if referrer == "" || referrer == SourceDirect {
		return SourceDirect
	}
	return classify(referrer, sourceRules, SourceOther)
}

// ByHour buckets events by hour of day in loc. All 24 hours are always
// returned, labelled "H:00".
func ByHour(events []models.Event, loc *time.Location) []models.HourlyCount {
	if loc == nil {
		loc = time.Local
	}

	var counts [hoursPerDay]int
	for _, e := range events {
		counts[e.OccurredAt.In(loc).Hour()]++
	}

	result := make([]models.HourlyCount, hoursPerDay)
	for h := range result {
		result[h] = models.HourlyCount{Hour: HourLabel(h), Count: counts[h]}
	}
	return result
}

func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// PeakHour returns the label of the busiest hour. Ties go to the earliest
// entry; an empty input yields "".
func PeakHour(hourly []models.HourlyCount) string {
	if len(hourly) == 0 {
		return ""
	}
	peak := hourly[0]
	for _, h := range hourly[1:] {
		if h.Count > peak.Count {
			peak = h
		}
	}
	return peak.Hour
}

// ClickCount counts link_clicked events whose payload.link_id is the string
// form of linkID. Linear in len(events); use ClickCounts for many links.
func ClickCount(events []models.Event, linkID int64) int {
	id := strconv.FormatInt(linkID, 10)
	n := 0
	for _, e := range events {
		if got, ok := clickedLinkID(e); ok && got == id {
			n++
		}
	}
	return n
}

// ClickCounts indexes link_clicked events by payload.link_id in one pass.
func ClickCounts(events []models.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		if id, ok := clickedLinkID(e); ok {
			counts[id]++
		}
	}
	return counts
}

func clickedLinkID(e models.Event) (string, bool) {
	if e.EventType != models.EventTypeLinkClicked {
		return "", false
	}
	return e.PayloadString(payloadLinkID)
}

type labelCount struct {
	label string
	count int
}

// sortedCounts orders buckets by count descending, then label ascending.
func sortedCounts(counts map[string]int) []labelCount {
	out := make([]labelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, labelCount{label: l, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}
