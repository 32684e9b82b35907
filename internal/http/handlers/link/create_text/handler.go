package create_text

import (
	"context"
	"io"
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/httputils"
	"strings"
)

const maxBodySize = 8 << 10

type ServiceShortener interface {
	Create(ctx context.Context, destination string) (models.Link, error)
	ShortURL(code string) string
}

type Counter interface {
	LinkCreated()
}

func HandlerCreateText(svc ServiceShortener, counter Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			httputils.WriteTextResponse(w, http.StatusBadRequest, models.ErrInvalidData.Error())
			return
		}

		destination := strings.TrimSpace(string(body))
		if destination == "" {
			httputils.WriteTextResponse(w, http.StatusBadRequest, "url is required")
			return
		}

		link, err := svc.Create(r.Context(), destination)
		if err != nil {
			httputils.WriteTextResponse(w, httputils.StatusFromError(err), httputils.PublicMessage(err))
			return
		}

		counter.LinkCreated()
		httputils.WriteTextResponse(w, http.StatusCreated, svc.ShortURL(link.Code))
	}
}
