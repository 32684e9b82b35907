package inmemory

import (
	"context"
	"fmt"
	"maps"
	"nexuslink/internal/domain/models"
	"sort"
	"sync"
	"time"
)

const initLastID = 0

type InmemoryStorage struct {
	mu          sync.RWMutex
	links       map[string]models.Link
	events      []models.Event
	lastLinkID  int64
	lastEventID int64
}

func NewStorage() *InmemoryStorage {
	return &InmemoryStorage{
		links:       make(map[string]models.Link),
		lastLinkID:  initLastID,
		lastEventID: initLastID,
	}
}

func (m *InmemoryStorage) LinkCreate(ctx context.Context, link models.Link) (models.Link, error) {
	if err := ctx.Err(); err != nil {
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, err)
	}

	if link.Code == "" || link.Destination == "" {
		return models.Link{}, models.ErrInvalidData
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.Code]; exists {
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, models.ErrConflict)
	}

	m.lastLinkID++
	link.ID = m.lastLinkID
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}

	m.links[link.Code] = link
	return link, nil
}

func (m *InmemoryStorage) LinkGetByCode(ctx context.Context, code string) (models.Link, error) {
	if err := ctx.Err(); err != nil {
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreRead, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	link, exists := m.links[code]
	if !exists {
		return models.Link{}, models.ErrUnfound
	}
	return link, nil
}

// LinkList возвращает ссылки, новые первыми
func (m *InmemoryStorage) LinkList(ctx context.Context) ([]models.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreRead, err)
	}

	m.mu.RLock()
	links := make([]models.Link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	m.mu.RUnlock()

	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.After(links[j].CreatedAt)
		}
		return links[i].ID > links[j].ID
	})
	return links, nil
}

func (m *InmemoryStorage) EventCreate(ctx context.Context, event models.Event) (models.Event, error) {
	if err := ctx.Err(); err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastEventID++
	event.ID = m.lastEventID
	// payload копируется: события неизменяемы после записи
	event.Payload = maps.Clone(event.Payload)

	m.events = append(m.events, event)
	return event, nil
}

// EventListSince возвращает события с occurred_at >= since по возрастанию времени
func (m *InmemoryStorage) EventListSince(ctx context.Context, since time.Time, limit int) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreRead, err)
	}

	m.mu.RLock()
	var result []models.Event
	for _, e := range m.events {
		if e.OccurredAt.Before(since) {
			continue
		}
		e.Payload = maps.Clone(e.Payload)
		result = append(result, e)
	}
	m.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt.Before(result[j].OccurredAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Snapshot возвращает копию всех ссылок (по id) и событий (в порядке записи)
func (m *InmemoryStorage) Snapshot() ([]models.Link, []models.Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]models.Link, 0, len(m.links))
	for _, l := range m.links {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].ID < links[j].ID })

	events := make([]models.Event, len(m.events))
	for i, e := range m.events {
		e.Payload = maps.Clone(e.Payload)
		events[i] = e
	}
	return links, events
}

// Restore заменяет содержимое хранилища, сохраняя исходные id
func (m *InmemoryStorage) Restore(links []models.Link, events []models.Event) error {
	restored := make(map[string]models.Link, len(links))
	var lastLinkID, lastEventID int64

	for _, l := range links {
		if l.Code == "" || l.Destination == "" {
			return fmt.Errorf("%w: link %d has empty fields", models.ErrInvalidData, l.ID)
		}
		if _, exists := restored[l.Code]; exists {
			return fmt.Errorf("%w: code %q", models.ErrConflict, l.Code)
		}
		restored[l.Code] = l
		lastLinkID = max(lastLinkID, l.ID)
	}
	for _, e := range events {
		lastEventID = max(lastEventID, e.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = restored
	m.events = append([]models.Event(nil), events...)
	m.lastLinkID = lastLinkID
	m.lastEventID = lastEventID
	return nil
}

func (m *InmemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InmemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = make(map[string]models.Link)
	m.events = nil
	m.lastLinkID = initLastID
	m.lastEventID = initLastID
	return nil
}
