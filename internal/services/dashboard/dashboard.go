package dashboard

import (
	"context"
	"fmt"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/services/aggregation"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWindow = 7 * 24 * time.Hour
	DefaultLimit  = 500
)

//go:generate mockgen -source=dashboard.go -destination=../../mocks/mock_dashboard.go -package=mocks
type EventSource interface {
	EventListSince(ctx context.Context, since time.Time, limit int) ([]models.Event, error)
}

type LinkSource interface {
	List(ctx context.Context) ([]models.Link, error)
	ShortURL(code string) string
}

type Options struct {
	Window   time.Duration
	Limit    int
	Location *time.Location
}

// Service собирает данные для дашборда: окно событий + список ссылок
type Service struct {
	events EventSource
	links  LinkSource
	opts   Options
	now    func() time.Time
}

func NewService(events EventSource, links LinkSource, opts Options) *Service {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		events: events,
		links:  links,
		opts:   opts,
		now:    time.Now,
	}
}

// Load читает окно событий и ссылки параллельно и строит все агрегаты
// по одному и тому же набору строк.
func (s *Service) Load(ctx context.Context) (models.Dashboard, error) {
	var (
		events []models.Event
		links  []models.Link
	)

	since := s.now().Add(-s.opts.Window).UTC()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.events.EventListSince(gctx, since, s.opts.Limit)
		if err != nil {
			return fmt.Errorf("failed to load events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		links, err = s.links.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to load links: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}

	hourly := aggregation.ByHour(events, s.opts.Location)

	return models.Dashboard{
		TotalClicks: len(events),
		Daily:       aggregation.ByDay(events),
		Devices:     aggregation.ByDevice(events),
		Browsers:    aggregation.ByBrowser(events),
		Sources:     aggregation.BySource(events),
		Hourly:      hourly,
		PeakHour:    aggregation.PeakHour(hourly),
		Links:       s.summarize(events, links),
	}, nil
}

func (s *Service) summarize(events []models.Event, links []models.Link) []models.LinkSummary {
	clicks := aggregation.ClickCounts(events)

	summaries := make([]models.LinkSummary, 0, len(links))
	for _, l := range links {
		summaries = append(summaries, models.LinkSummary{
			Link:     l,
			ShortURL: s.links.ShortURL(l.Code),
			Clicks:   clicks[strconv.FormatInt(l.ID, 10)],
		})
	}
	return summaries
}
