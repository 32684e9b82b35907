package httputils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"nexuslink/internal/domain/models"
)

// MIME: https://developer.mozilla.org/en-US/docs/Web/HTTP/Guides/MIME_types/Common_types

const (
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderContentLength   = "Content-Length"
	HeaderUserAgent       = "User-Agent"
	HeaderReferer         = "Referer"
	HeaderLocation        = "Location"

	MIMEApplicationJSON = "application/json"
	MIMETextHTML        = "text/html; charset=utf-8"
	MIMETextPlain       = "text/plain; charset=utf-8"

	EncodingGzip = "gzip"

	AuthCookieName = "auth_token"
)

type contextKey string

const userIDKey contextKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID возвращает id анонимного пользователя, выставленный auth middleware
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func WriteTextResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set(HeaderContentType, MIMETextPlain)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func WriteJSONError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, struct {
		Error string `json:"error"`
	}{Error: message})
}

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(HeaderContentType, MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// StatusFromError сопоставляет доменные ошибки со статусами HTTP
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrInvalidData):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnfound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage скрывает детали внутренних ошибок от клиента
func PublicMessage(err error) string {
	switch StatusFromError(err) {
	case http.StatusBadRequest:
		return models.ErrInvalidData.Error()
	case http.StatusConflict:
		return models.ErrConflict.Error()
	case http.StatusNotFound:
		return models.ErrUnfound.Error()
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}
