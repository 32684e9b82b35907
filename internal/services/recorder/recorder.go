package recorder

import (
	"context"
	"fmt"
	"nexuslink/internal/domain/models"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

//go:generate mockgen -source=recorder.go -destination=../../mocks/mock_event_storage.go -package=mocks
type EventStorage interface {
	EventCreate(ctx context.Context, event models.Event) (models.Event, error)
}

// RecordParams - параметры события, время назначает сервер
type RecordParams struct {
	UserID    string
	LinkID    string
	EventType string
	Payload   map[string]any
}

// Recorder добавляет события в журнал (append-only)
type Recorder struct {
	storage EventStorage
	log     *zerolog.Logger
	now     func() time.Time
}

func NewRecorder(storage EventStorage, log *zerolog.Logger) *Recorder {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Recorder{
		storage: storage,
		log:     log,
		now:     time.Now,
	}
}

// Record пишет одно событие. Ошибка хранилища оборачивается в ErrRecord,
// решение о том показывать ли её остается за вызывающим.
func (r *Recorder) Record(ctx context.Context, params RecordParams) (models.Event, error) {
	eventType := strings.TrimSpace(params.EventType)
	if eventType == "" {
		return models.Event{}, fmt.Errorf("%w: event type is required", models.ErrInvalidData)
	}

	payload := params.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	event, err := r.storage.EventCreate(ctx, models.Event{
		UserID:     params.UserID,
		LinkID:     params.LinkID,
		EventType:  eventType,
		OccurredAt: r.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		r.log.Error().
			Err(err).
			Str("event_type", eventType).
			Str("link_id", params.LinkID).
			Msg("failed to record analytics event")
		return models.Event{}, fmt.Errorf("%w: %w", models.ErrRecord, err)
	}

	return event, nil
}
