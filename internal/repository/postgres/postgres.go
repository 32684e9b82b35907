package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"nexuslink/internal/domain/models"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	storageMaxOpenConnections     = 5
	storageMaxIdleConnections     = 2
	storageConnectionsMaxIdleTime = 2 * time.Minute
	storageConnectionsLifetime    = 30 * time.Minute
	storagePingTimeout            = 5 * time.Second
)

const (
	pgErrCodeUniqueViolation = "23505"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewStorage(ctx context.Context, dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	initConnectionPools(db)

	ctxPing, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return New(db), nil
}

// New оборачивает уже открытое соединение (используется в тестах со sqlmock)
func New(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func initConnectionPools(db *sql.DB) {
	db.SetMaxOpenConns(storageMaxOpenConnections)
	db.SetMaxIdleConns(storageMaxIdleConnections)
	db.SetConnMaxIdleTime(storageConnectionsMaxIdleTime)
	db.SetConnMaxLifetime(storageConnectionsLifetime)
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS links (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(16) UNIQUE NOT NULL,
			destination TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NULL,
			link_id TEXT NULL,
			event_type TEXT NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL DEFAULT '{}'::jsonb
		);
		CREATE INDEX IF NOT EXISTS events_occurred_at_idx ON events (occurred_at);`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (p *PostgresStorage) LinkCreate(ctx context.Context, link models.Link) (models.Link, error) {
	if link.Code == "" || link.Destination == "" {
		return models.Link{}, models.ErrInvalidData
	}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO links (code, destination, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		link.Code, link.Destination, link.CreatedAt,
	).Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, models.ErrConflict)
		}
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, err)
	}

	return link, nil
}

func (p *PostgresStorage) LinkGetByCode(ctx context.Context, code string) (models.Link, error) {
	if code == "" {
		return models.Link{}, fmt.Errorf("%w: code must not be empty", models.ErrInvalidData)
	}

	var link models.Link
	err := p.db.QueryRowContext(ctx,
		"SELECT id, code, destination, created_at FROM links WHERE code = $1",
		code,
	).Scan(&link.ID, &link.Code, &link.Destination, &link.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Link{}, fmt.Errorf("%w: code not found", models.ErrUnfound)
		}
		return models.Link{}, fmt.Errorf("%w: %w", models.ErrStoreRead, err)
	}

	return link, nil
}

func (p *PostgresStorage) LinkList(ctx context.Context) ([]models.Link, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT id, code, destination, created_at FROM links ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query links: %w", models.ErrStoreRead, err)
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.Code, &link.Destination, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return links, nil
}

func (p *PostgresStorage) EventCreate(ctx context.Context, event models.Event) (models.Event, error) {
	payload, err := json.Marshal(payloadOrEmpty(event.Payload))
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: failed to marshal payload: %w", models.ErrStoreWrite, err)
	}

	err = p.db.QueryRowContext(ctx, `
		INSERT INTO events (user_id, link_id, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		nullString(event.UserID), nullString(event.LinkID), event.EventType, event.OccurredAt, payload,
	).Scan(&event.ID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", models.ErrStoreWrite, err)
	}

	return event, nil
}

func (p *PostgresStorage) EventListSince(ctx context.Context, since time.Time, limit int) ([]models.Event, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", models.ErrInvalidData)
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, link_id, event_type, occurred_at, payload
		FROM events
		WHERE occurred_at >= $1
		ORDER BY occurred_at ASC
		LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query events: %w", models.ErrStoreRead, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			event          models.Event
			userID, linkID sql.NullString
			payload        []byte
		)
		if err := rows.Scan(&event.ID, &userID, &linkID, &event.EventType, &event.OccurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.UserID = userID.String
		event.LinkID = linkID.String

		// битый payload не ломает выборку, агрегаты увидят пустую карту
		event.Payload = map[string]any{}
		if len(payload) > 0 {
			_ = json.Unmarshal(payload, &event.Payload)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}

func (p *PostgresStorage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func payloadOrEmpty(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	return payload
}
