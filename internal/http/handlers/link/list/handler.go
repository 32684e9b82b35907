package list

import (
	"context"
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/httputils"
	"time"

	"github.com/rs/zerolog"
)

const loadTimeout = 10 * time.Second

type ServiceDashboard interface {
	Load(ctx context.Context) (models.Dashboard, error)
}

// HandlerListLinks отдаёт ссылки (новые первыми) с числом кликов за окно дашборда
func HandlerListLinks(svc ServiceDashboard, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), loadTimeout)
		defer cancel()

		d, err := svc.Load(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to load links")
			httputils.WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		links := make([]dto.LinkResponse, 0, len(d.Links))
		for _, s := range d.Links {
			links = append(links, dto.LinkResponseFromSummary(s))
		}
		httputils.WriteJSONResponse(w, http.StatusOK, links)
	}
}
