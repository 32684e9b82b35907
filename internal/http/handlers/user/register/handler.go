package register

import (
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/handlers/middlewares/auth"
	"nexuslink/internal/http/httputils"
	"time"

	"github.com/rs/zerolog"
)

type Authentication interface {
	Register() (models.User, string, time.Time, error)
}

func HandlerRegister(svc Authentication, log *zerolog.Logger, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, token, expiresAt, err := svc.Register()
		if err != nil {
			log.Error().Err(err).Msg("failed to register user")
			httputils.WriteJSONError(w, http.StatusInternalServerError, "Authentication failed")
			return
		}

		auth.SetCookie(w, token, expiresAt, secure)
		httputils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
			UserID:    user.ID,
			ExpiresAt: expiresAt,
		})
	}
}
