package metrics

import (
	"net/http"
	"nexuslink/internal/http/httputils"
	"time"

	"github.com/gorilla/mux"
)

const unmatchedEndpoint = "unmatched"

type Recorder interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration, responseSize int)
}

// MiddlewareMetrics подписывает запросы шаблоном маршрута, чтобы коды
// ссылок не раздували кардинальность меток
func MiddlewareMetrics(m Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := httputils.NewResponseRecorder(w)

			next.ServeHTTP(recorder, r)

			m.RecordHTTPRequest(r.Method, endpoint(r), recorder.Status(), time.Since(start), recorder.Size)
		})
	}
}

func endpoint(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedEndpoint
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedEndpoint
	}
	return tpl
}
