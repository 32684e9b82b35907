package redirect

import (
	"context"
	"net/http"
	"nexuslink/internal/http/httputils"
	"nexuslink/internal/services/redirect"

	"github.com/gorilla/mux"
)

type Resolver interface {
	Resolve(ctx context.Context, code string, click redirect.ClickContext) redirect.Outcome
}

type Counter interface {
	Redirect(state string)
}

// HandlerRedirect всегда отвечает 302: на адрес назначения, на /not-found или на главную
func HandlerRedirect(resolver Resolver, counter Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		outcome := resolver.Resolve(r.Context(), code, redirect.ClickContext{
			UserID:    httputils.UserID(r.Context()),
			UserAgent: r.Header.Get(httputils.HeaderUserAgent),
			Referrer:  r.Header.Get(httputils.HeaderReferer),
		})

		counter.Redirect(outcome.State.String())
		http.Redirect(w, r, outcome.Location, http.StatusFound)
	}
}
