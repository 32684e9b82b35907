package ping

import (
	"context"
	"net/http"
	"nexuslink/internal/http/httputils"

	"github.com/rs/zerolog"
)

type Service interface {
	PingDataBase(ctx context.Context) error
}

func HandlerPing(svc Service, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.PingDataBase(r.Context()); err != nil {
			log.Error().Err(err).Msg("Database ping failed")
			httputils.WriteTextResponse(w, http.StatusInternalServerError, "Database unavailable")
			return
		}
		httputils.WriteTextResponse(w, http.StatusOK, "OK")
	}
}
