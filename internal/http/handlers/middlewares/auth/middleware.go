package auth

import (
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/httputils"
	"time"

	"github.com/rs/zerolog"
)

type Authentication interface {
	Register() (models.User, string, time.Time, error)
	Validate(token string) (models.User, error)
}

// MiddlewareAuth кладёт id анонимного пользователя в контекст.
// Без валидной куки пользователь регистрируется и получает новую куку,
// запрос при этом продолжается.
func MiddlewareAuth(auth Authentication, log *zerolog.Logger, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// 1. Пытаемся получить валидного пользователя из куки
			cookie, cookieErr := r.Cookie(httputils.AuthCookieName)
			if cookieErr == nil && cookie.Value != "" {
				user, validateErr := auth.Validate(cookie.Value)
				if validateErr == nil {
					next.ServeHTTP(w, r.WithContext(httputils.WithUserID(ctx, user.ID)))
					return
				}
				log.Debug().Err(validateErr).Msg("auth cookie rejected")
			}

			// 2. Если куки нет или она невалидна - создаем нового пользователя
			user, token, expiresAt, err := auth.Register()
			if err != nil {
				log.Error().Err(err).Msg("failed to register anonymous user")
				next.ServeHTTP(w, r)
				return
			}

			SetCookie(w, token, expiresAt, secure)
			next.ServeHTTP(w, r.WithContext(httputils.WithUserID(ctx, user.ID)))
		})
	}
}

func SetCookie(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     httputils.AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
