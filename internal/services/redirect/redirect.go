package redirect

import (
	"context"
	"errors"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/services/recorder"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type State int

const (
	StateResolving State = iota
	StateRedirecting
	StateNotFound
	StateHome
)

const (
	NotFoundPath = "/not-found"
	HomePath     = "/"

	defaultRecordTimeout = 5 * time.Second
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateRedirecting:
		return "redirecting"
	case StateNotFound:
		return "not_found"
	case StateHome:
		return "home"
	default:
		return "unknown"
	}
}

//go:generate mockgen -source=redirect.go -destination=../../mocks/mock_redirect.go -package=mocks
type LinkResolver interface {
	Resolve(ctx context.Context, code string) (models.Link, error)
}

type EventRecorder interface {
	Record(ctx context.Context, params recorder.RecordParams) (models.Event, error)
}

// ClickContext - данные запроса, попадающие в payload клика
type ClickContext struct {
	UserID    string
	UserAgent string
	Referrer  string
}

// Outcome - терминальное состояние и адрес навигации
type Outcome struct {
	State    State
	Location string
	Link     models.Link
}

type Resolver struct {
	links         LinkResolver
	events        EventRecorder
	log           *zerolog.Logger
	recordTimeout time.Duration
	now           func() time.Time
	wg            sync.WaitGroup
}

func NewResolver(links LinkResolver, events EventRecorder, log *zerolog.Logger, recordTimeout time.Duration) *Resolver {
	if recordTimeout <= 0 {
		recordTimeout = defaultRecordTimeout
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Resolver{
		links:         links,
		events:        events,
		log:           log,
		recordTimeout: recordTimeout,
		now:           time.Now,
	}
}

// Resolve переводит Resolving в Redirecting или NotFound. Запись клика
// запускается в фоне и не влияет на результат.
func (r *Resolver) Resolve(ctx context.Context, code string, click ClickContext) Outcome {
	if code == "" {
		return Outcome{State: StateHome, Location: HomePath}
	}

	link, err := r.links.Resolve(ctx, code)
	if err != nil || link.Destination == "" {
		if err != nil && !errors.Is(err, models.ErrUnfound) {
			r.log.Warn().Err(err).Str("code", code).Msg("link lookup failed")
		}
		return Outcome{State: StateNotFound, Location: NotFoundPath}
	}

	r.recordClick(ctx, code, link, click)

	return Outcome{State: StateRedirecting, Location: link.Destination, Link: link}
}

// Wait blocks until every in-flight click recording has finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

func (r *Resolver) recordClick(ctx context.Context, code string, link models.Link, click ClickContext) {
	linkID := strconv.FormatInt(link.ID, 10)
	params := recorder.RecordParams{
		UserID:    click.UserID,
		LinkID:    linkID,
		EventType: models.EventTypeLinkClicked,
		Payload: map[string]any{
			"code":        code,
			"destination": link.Destination,
			"link_id":     linkID,
			"userAgent":   click.UserAgent,
			"referrer":    click.Referrer,
			"timestamp":   r.now().UTC().Format(time.RFC3339Nano),
		},
	}

	// запрос может завершиться раньше записи
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.recordTimeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		if _, err := r.events.Record(recordCtx, params); err != nil {
			r.log.Warn().Err(err).Str("code", code).Msg("failed to record click event")
		}
	}()
}
