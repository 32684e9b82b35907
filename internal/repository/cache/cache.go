package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/repository"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	DefaultTTL = time.Hour

	keyPrefix        = "link:"
	poolSize         = 10
	minIdleConns     = 2
	connectTimeout   = 5 * time.Second
	operationTimeout = 200 * time.Millisecond
)

// Storage кеширует разрешение кода в Redis поверх основного хранилища.
// Ссылки неизменяемы, поэтому запись в кеш не требует инвалидации.
type Storage struct {
	repository.Storage
	client *redis.Client
	ttl    time.Duration
	log    *zerolog.Logger
}

// NewRedisClient подключается к Redis по адресу host:port или redis:// URL
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		opt = &redis.Options{Addr: addr}
	}
	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func New(next repository.Storage, client *redis.Client, ttl time.Duration, log *zerolog.Logger) *Storage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Storage{
		Storage: next,
		client:  client,
		ttl:     ttl,
		log:     log,
	}
}

// LinkGetByCode сначала смотрит в Redis; ошибки кеша не мешают чтению из хранилища
func (s *Storage) LinkGetByCode(ctx context.Context, code string) (models.Link, error) {
	if link, ok := s.get(ctx, code); ok {
		return link, nil
	}

	link, err := s.Storage.LinkGetByCode(ctx, code)
	if err != nil {
		return models.Link{}, err
	}

	s.set(ctx, link)
	return link, nil
}

func (s *Storage) LinkCreate(ctx context.Context, link models.Link) (models.Link, error) {
	created, err := s.Storage.LinkCreate(ctx, link)
	if err != nil {
		return models.Link{}, err
	}
	s.set(ctx, created)
	return created, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return s.Storage.Ping(ctx)
}

func (s *Storage) Close() error {
	return errors.Join(s.client.Close(), s.Storage.Close())
}

func (s *Storage) get(ctx context.Context, code string) (models.Link, bool) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, key(code)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("code", code).Msg("cache read failed")
		}
		return models.Link{}, false
	}

	var link models.Link
	if err := json.Unmarshal(raw, &link); err != nil {
		s.log.Warn().Err(err).Str("code", code).Msg("cache entry is corrupted")
		return models.Link{}, false
	}
	return link, true
}

func (s *Storage) set(ctx context.Context, link models.Link) {
	raw, err := json.Marshal(link)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key(link.Code), raw, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("code", link.Code).Msg("cache write failed")
	}
}

func key(code string) string {
	return keyPrefix + code
}
