package shortener

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"nexuslink/internal/domain/models"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

/*
LinkStorage - интерфейс хранилища ссылок.
Уникальность кода обеспечивает само хранилище (ErrConflict).
*/

//go:generate mockgen -source=shortener.go -destination=../../mocks/mock_link_storage.go -package=mocks
type LinkStorage interface {
	LinkCreate(ctx context.Context, link models.Link) (models.Link, error)
	LinkGetByCode(ctx context.Context, code string) (models.Link, error)
	LinkList(ctx context.Context) ([]models.Link, error)
	Ping(ctx context.Context) error
}

type destinationInput struct {
	Destination string `validate:"required,url"`
}

// Shortener реализует бизнес-логику создания и разрешения коротких ссылок
type Shortener struct {
	storage    LinkStorage
	log        *zerolog.Logger
	validate   *validator.Validate
	baseURL    string
	codeLength int
	now        func() time.Time
}

// NewShortener создает новый экземпляр сервиса
func NewShortener(storage LinkStorage, log *zerolog.Logger, baseURL string, codeLength int) *Shortener {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Shortener{
		storage:    storage,
		log:        log,
		validate:   validator.New(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		codeLength: codeLength,
		now:        time.Now,
	}
}

// Create валидирует destination, генерирует код и сохраняет ссылку.
// Повторов при конфликте кода нет.
func (s *Shortener) Create(ctx context.Context, destination string) (models.Link, error) {
	destination = strings.TrimSpace(destination)
	if err := s.validateDestination(destination); err != nil {
		return models.Link{}, err
	}

	code, err := GenerateCode(s.codeLength)
	if err != nil {
		return models.Link{}, fmt.Errorf("failed to generate code: %w", err)
	}

	link, err := s.storage.LinkCreate(ctx, models.Link{
		Code:        code,
		Destination: destination,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("code", code).Msg("link insert rejected")
		if errors.Is(err, models.ErrStoreWrite) {
			return models.Link{}, err
		}
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, err)
	}

	s.log.Info().Str("code", link.Code).Int64("link_id", link.ID).Msg("short link created")
	return link, nil
}

// Resolve возвращает ссылку по коду; ErrUnfound если записи нет
func (s *Shortener) Resolve(ctx context.Context, code string) (models.Link, error) {
	if code == "" {
		return models.Link{}, models.ErrInvalidData
	}

	link, err := s.storage.LinkGetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, models.ErrUnfound) {
			return models.Link{}, fmt.Errorf("%w: code %q", models.ErrUnfound, code)
		}
		if errors.Is(err, models.ErrStoreRead) {
			return models.Link{}, err
		}
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreRead, err)
	}
	return link, nil
}

// List возвращает все ссылки, новые первыми
func (s *Shortener) List(ctx context.Context) ([]models.Link, error) {
	links, err := s.storage.LinkList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// ShortURL возвращает полный короткий URL
func (s *Shortener) ShortURL(code string) string {
	return fmt.Sprintf("%s/r/%s", s.baseURL, code)
}

func (s *Shortener) GenerateCode(length int) (string, error) {
	return GenerateCode(length)
}

// PingDataBase проверяет соединение с хранилищем
func (s *Shortener) PingDataBase(ctx context.Context) error {
	if err := s.storage.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *Shortener) validateDestination(destination string) error {
	if err := s.validate.Struct(destinationInput{Destination: destination}); err != nil {
		return fmt.Errorf("%w: destination must be an absolute URL", models.ErrInvalidData)
	}

	u, err := url.Parse(destination)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: destination must use http or https", models.ErrInvalidData)
	}
	return nil
}
