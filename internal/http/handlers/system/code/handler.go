package code

import (
	"net/http"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/httputils"
	"strconv"
)

const (
	DefaultLength = 6
	MaxLength     = 64
)

type Generator interface {
	GenerateCode(length int) (string, error)
}

// HandlerGenerateCode выдаёт случайный код без записи в хранилище
func HandlerGenerateCode(gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		length := DefaultLength
		if raw := r.URL.Query().Get("length"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > MaxLength {
				httputils.WriteJSONError(w, http.StatusBadRequest, "length must be between 1 and 64")
				return
			}
			length = n
		}

		code, err := gen.GenerateCode(length)
		if err != nil {
			httputils.WriteJSONError(w, httputils.StatusFromError(err), httputils.PublicMessage(err))
			return
		}
		httputils.WriteJSONResponse(w, http.StatusOK, dto.CodeResponse{Code: code})
	}
}
