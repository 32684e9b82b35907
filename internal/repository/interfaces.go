package repository

import (
	"context"
	"nexuslink/internal/domain/models"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_storage.go -package=mocks

// Storage - основной интерфейс хранилища ссылок и журнала событий
type (
	Storage interface {
		// Ссылки
		LinkCreate(ctx context.Context, link models.Link) (models.Link, error)
		LinkGetByCode(ctx context.Context, code string) (models.Link, error)
		LinkList(ctx context.Context) ([]models.Link, error)

		// События (только добавление)
		EventCreate(ctx context.Context, event models.Event) (models.Event, error)
		EventListSince(ctx context.Context, since time.Time, limit int) ([]models.Event, error)

		// Управление соединением
		Ping(ctx context.Context) error
		Close() error
	}
)
