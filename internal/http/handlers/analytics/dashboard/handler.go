package dashboard

import (
	"context"
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/httputils"
	"nexuslink/internal/http/templates"
	"time"

	"github.com/rs/zerolog"
)

const loadTimeout = 10 * time.Second

type ServiceDashboard interface {
	Load(ctx context.Context) (models.Dashboard, error)
}

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

func HandlerDashboardJSON(svc ServiceDashboard, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := load(r.Context(), svc)
		if err != nil {
			log.Error().Err(err).Msg("failed to load dashboard")
			httputils.WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}
		httputils.WriteJSONResponse(w, http.StatusOK, dto.DashboardResponseFromDomain(d))
	}
}

func HandlerDashboardPage(svc ServiceDashboard, renderer Renderer, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := load(r.Context(), svc)
		if err != nil {
			log.Error().Err(err).Msg("failed to load dashboard")
			httputils.WriteTextResponse(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
		if err := renderer.Render(w, http.StatusOK, templates.PageDashboard, d); err != nil {
			log.Error().Err(err).Msg("failed to render dashboard")
			httputils.WriteTextResponse(w, http.StatusInternalServerError, "Failed to render dashboard")
		}
	}
}

func load(ctx context.Context, svc ServiceDashboard) (models.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	return svc.Load(ctx)
}
