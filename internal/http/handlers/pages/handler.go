package pages

import (
	"net/http"

	"github.com/rs/zerolog"
)

type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

func HandlerPage(renderer Renderer, page string, status int, log *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := renderer.Render(w, status, page, nil); err != nil {
			log.Error().Err(err).Str("page", page).Msg("failed to render page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
