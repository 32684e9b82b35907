package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/templates"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboard struct {
	d   models.Dashboard
	err error
}

func (s stubDashboard) Load(ctx context.Context) (models.Dashboard, error) {
	if _, ok := ctx.Deadline(); !ok {
		return models.Dashboard{}, errors.New("missing deadline")
	}
	return s.d, s.err
}

func TestHandlerDashboardJSON(t *testing.T) {
	log := zerolog.Nop()

	t.Run("Пустой дашборд отдаёт массивы", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandlerDashboardJSON(stubDashboard{d: models.Dashboard{}}, &log).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"total_clicks":0,"peak_hour":"","daily":[],"devices":[],"browsers":[],"sources":[],"hourly":[],"links":[]}`, rec.Body.String())
	})

	t.Run("Ошибка загрузки", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandlerDashboardJSON(stubDashboard{err: errors.New("db down")}, &log).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestHandlerDashboardPage(t *testing.T) {
	log := zerolog.Nop()
	renderer, err := templates.New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	HandlerDashboardPage(stubDashboard{d: models.Dashboard{TotalClicks: 42, PeakHour: "14:00"}}, renderer, &log).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
	assert.Contains(t, rec.Body.String(), "14:00")

	rec = httptest.NewRecorder()
	HandlerDashboardPage(stubDashboard{err: errors.New("db down")}, renderer, &log).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
