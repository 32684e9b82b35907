package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLogging(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantLevel  string
	}{
		{
			name:       "Успешный запрос",
			handler:    func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) },
			wantStatus: http.StatusOK,
			wantLevel:  `"level":"info"`,
		},
		{
			name:       "Ошибка клиента",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadRequest) },
			wantStatus: http.StatusBadRequest,
			wantLevel:  `"level":"warn"`,
		},
		{
			name:       "Паника в обработчике",
			handler:    func(w http.ResponseWriter, r *http.Request) { panic("boom") },
			wantStatus: http.StatusInternalServerError,
			wantLevel:  `"level":"error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			rec := httptest.NewRecorder()
			MiddlewareLogging(&log)(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r/abc234", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), `"path":"/r/abc234"`)
			assert.Contains(t, buf.String(), "request completed")
		})
	}
}
