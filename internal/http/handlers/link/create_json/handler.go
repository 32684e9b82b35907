package create_json

import (
	"context"
	"encoding/json"
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/httputils"
	"strings"
)

type ServiceShortener interface {
	Create(ctx context.Context, destination string) (models.Link, error)
	ShortURL(code string) string
}

type Counter interface {
	LinkCreated()
}

func HandlerCreateJSON(svc ServiceShortener, counter Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ShortenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if strings.TrimSpace(req.URL) == "" {
			httputils.WriteJSONError(w, http.StatusBadRequest, "url is required")
			return
		}

		link, err := svc.Create(r.Context(), req.URL)
		if err != nil {
			httputils.WriteJSONError(w, httputils.StatusFromError(err), httputils.PublicMessage(err))
			return
		}

		counter.LinkCreated()
		httputils.WriteJSONResponse(w, http.StatusCreated, dto.ShortenResponseFromDomain(link, svc.ShortURL(link.Code)))
	}
}
