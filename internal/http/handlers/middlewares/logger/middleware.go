package logger

import (
	"fmt"
	"net/http"
	"nexuslink/internal/http/httputils"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
)

func MiddlewareLogging(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := httputils.NewResponseRecorder(w)

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Msg("request started")

			// Перехватываем паники, чтобы залогировать их
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Str("panic", fmt.Sprintf("%v", err)).
						Str("stack", string(debug.Stack())).
						Msg("request panic")
					if recorder.StatusCode == 0 {
						http.Error(recorder, "Internal Server Error", http.StatusInternalServerError)
					}
				}

				status := recorder.Status()
				logEvent := log.Info()
				if status >= http.StatusInternalServerError {
					logEvent = log.Error()
				} else if status >= http.StatusBadRequest {
					logEvent = log.Warn()
				}

				logEvent.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Dur("duration", time.Since(start)).
					Int("bytes", recorder.Size).
					Msg("request completed")
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}
