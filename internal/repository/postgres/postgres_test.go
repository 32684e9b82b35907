package postgres

import (
	"context"
	"database/sql"
	"errors"
	"nexuslink/internal/domain/models"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestPostgres_LinkCreate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("INSERT INTO links").
			WithArgs("abc234", "https://example.com", now).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

		got, err := repo.LinkCreate(context.Background(), models.Link{Code: "abc234", Destination: "https://example.com", CreatedAt: now})
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
		assert.Equal(t, "abc234", got.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("INSERT INTO links").
			WillReturnError(&pgconn.PgError{Code: pgErrCodeUniqueViolation})

		_, err := repo.LinkCreate(context.Background(), models.Link{Code: "abc234", Destination: "https://example.com", CreatedAt: now})
		assert.ErrorIs(t, err, models.ErrConflict)
		assert.ErrorIs(t, err, models.ErrStoreWrite)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other write failure", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("INSERT INTO links").WillReturnError(errors.New("connection refused"))

		_, err := repo.LinkCreate(context.Background(), models.Link{Code: "abc234", Destination: "https://example.com", CreatedAt: now})
		assert.ErrorIs(t, err, models.ErrStoreWrite)
		assert.NotErrorIs(t, err, models.ErrConflict)
	})

	t.Run("invalid input skips the store", func(t *testing.T) {
		repo, mock := newMock(t)

		_, err := repo.LinkCreate(context.Background(), models.Link{Code: "abc234"})
		assert.ErrorIs(t, err, models.ErrInvalidData)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgres_LinkGetByCode(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT (.+) FROM links WHERE code =").
			WithArgs("abc234").
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "destination", "created_at"}).
				AddRow(int64(1), "abc234", "https://example.com", now))

		got, err := repo.LinkGetByCode(context.Background(), "abc234")
		require.NoError(t, err)
		assert.Equal(t, models.Link{ID: 1, Code: "abc234", Destination: "https://example.com", CreatedAt: now}, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT (.+) FROM links WHERE code =").
			WithArgs("zzzzzz").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.LinkGetByCode(context.Background(), "zzzzzz")
		assert.ErrorIs(t, err, models.ErrUnfound)
	})

	t.Run("read failure", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery("SELECT (.+) FROM links WHERE code =").
			WillReturnError(errors.New("timeout"))

		_, err := repo.LinkGetByCode(context.Background(), "abc234")
		assert.ErrorIs(t, err, models.ErrStoreRead)
	})
}

func TestPostgres_LinkList(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM links ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "destination", "created_at"}).
			AddRow(int64(2), "bbbbbb", "https://b.example", now).
			AddRow(int64(1), "aaaaaa", "https://a.example", now.Add(-time.Hour)))

	got, err := repo.LinkList(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bbbbbb", got[0].Code)
	assert.Equal(t, "aaaaaa", got[1].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_EventCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO events").
		WithArgs(nil, "42", models.EventTypeLinkClicked, now, []byte(`{"referrer":"google.com","userAgent":"Firefox"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	got, err := repo.EventCreate(context.Background(), models.Event{
		LinkID:     "42",
		EventType:  models.EventTypeLinkClicked,
		OccurredAt: now,
		Payload:    map[string]any{"userAgent": "Firefox", "referrer": "google.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("rejected insert", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectQuery("INSERT INTO events").WillReturnError(errors.New("permission denied"))

		_, err := repo.EventCreate(context.Background(), models.Event{EventType: "x", OccurredAt: now})
		assert.ErrorIs(t, err, models.ErrStoreWrite)
	})
}

func TestPostgres_EventListSince(t *testing.T) {
	repo, mock := newMock(t)
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM events WHERE occurred_at >=").
		WithArgs(since, 500).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "link_id", "event_type", "occurred_at", "payload"}).
			AddRow(int64(1), nil, "7", models.EventTypeLinkClicked, since.Add(time.Hour), []byte(`{"link_id":"7","userAgent":"Chrome"}`)).
			AddRow(int64(2), "user-1", nil, "demo_dashboard_clicked", since.Add(2*time.Hour), []byte(`not json`)))

	got, err := repo.EventListSince(context.Background(), since, 500)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "7", got[0].LinkID)
	assert.Empty(t, got[0].UserID)
	assert.Equal(t, "Chrome", got[0].Payload["userAgent"])

	assert.Equal(t, "user-1", got[1].UserID)
	assert.Empty(t, got[1].LinkID)
	assert.Empty(t, got[1].Payload)
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.EventListSince(context.Background(), since, 0)
		assert.ErrorIs(t, err, models.ErrInvalidData)
	})
}

func TestPostgres_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	repo := New(db)
	mock.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	assert.Error(t, repo.Ping(context.Background()))
}
