package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"nexuslink/internal/domain/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Authentication выдает анонимные JWT-идентичности. Пользователи нигде не
// хранятся: идентификатор живет только в подписанном токене.
type Authentication struct {
	secretKey []byte
	accessExp time.Duration
	now       func() time.Time
}

func NewAuthentication(secretKey string, accessExp time.Duration) (*Authentication, error) {
	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil || len(key) < 32 {
		return nil, fmt.Errorf("invalid JWT secret key: must be at least 32 bytes when decoded")
	}

	return &Authentication{
		secretKey: key,
		accessExp: accessExp,
		now:       time.Now,
	}, nil
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Register создает нового пользователя и подписанный токен для него
func (a *Authentication) Register() (models.User, string, time.Time, error) {
	user := models.User{
		ID:        uuid.NewString(),
		CreatedAt: a.now().UTC(),
	}

	expiresAt := user.CreatedAt.Add(a.accessExp)
	token, err := a.jwtGenerate(user, expiresAt)
	if err != nil {
		return models.User{}, "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, expiresAt, nil
}

// Validate проверяет подпись и срок действия токена
func (a *Authentication) Validate(tokenString string) (models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.secretKey, nil
		},
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return models.User{}, ErrInvalidToken
	}

	user := models.User{ID: claims.UserID}
	if claims.IssuedAt != nil {
		user.CreatedAt = claims.IssuedAt.Time
	}
	return user, nil
}

func (a *Authentication) jwtGenerate(user models.User, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(user.CreatedAt),
		},
		UserID: user.ID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secretKey)
}
