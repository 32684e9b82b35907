package models

import (
	"errors"
	"time"
)

const (
	// EventTypeLinkClicked - тип события перехода по короткой ссылке
	EventTypeLinkClicked = "link_clicked"
)

type (
	User struct {
		ID        string
		CreatedAt time.Time
	}

	Link struct {
		ID          int64     // Уникальный идентификатор
		Code        string    // Короткий код (aBcD12)
		Destination string    // Оригинальный URL в изначальном виде
		CreatedAt   time.Time // неизменяем после создания
	}

	// Event - неизменяемая запись действия пользователя или системы
	Event struct {
		ID         int64
		UserID     string // пустая строка = NULL
		LinkID     string // пустая строка = NULL
		EventType  string
		OccurredAt time.Time
		Payload    map[string]any
	}
)

var (
	ErrInvalidData = errors.New("invalid input data")
	ErrUnfound     = errors.New("unfound data")
	ErrConflict    = errors.New("duplicate short code")
	ErrStoreWrite  = errors.New("store write rejected")
	ErrStoreRead   = errors.New("store read failed")
	ErrRecord      = errors.New("event record rejected")
)

// PayloadString returns the string stored under key, ok=false when the key is
// missing or holds a non-string value.
func (e Event) PayloadString(key string) (string, bool) {
	if e.Payload == nil {
		return "", false
	}
	v, ok := e.Payload[key].(string)
	return v, ok
}
