package shortener

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"nexuslink/internal/domain/models"
)

const (
	DefaultCodeLength = 6

	// Без похожих символов: 0 O o 1 I l i L
	CodeAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

var alphabetSize = big.NewInt(int64(len(CodeAlphabet)))

// GenerateCode возвращает случайный код заданной длины из CodeAlphabet.
// Уникальность не проверяется.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: code length must be positive, got %d", models.ErrInvalidData, length)
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b[i] = CodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
