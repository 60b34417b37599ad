// Package auth проверяет bearer-токены, выданные провайдером идентификации
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shenikar/incident_map/internal/apperr"
)

// Claims - полезная нагрузка токена провайдера
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор пользователя (sub)
func (c *Claims) UserID() string {
	return c.Subject
}

// Verifier проверяет подпись и срок действия токенов (HS256)
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer, leeway: 30 * time.Second}
}

// Verify разбирает токен и возвращает claims; любая ошибка оборачивает apperr.ErrAuth
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apperr.ErrAuth)
		}
		return nil, fmt.Errorf("%w: invalid token: %v", apperr.ErrAuth, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperr.ErrAuth)
	}
	return claims, nil
}

// Issue подписывает токен тем же секретом. Используется в тестах и локальной разработке.
func Issue(secret, issuer, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
