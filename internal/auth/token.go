package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/models"
)

// Claims carried by a session token. Tokens are stateless: there is no
// server-side revocation, logout is a client-side delete.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Verify parses and validates a token, returning the embedded claims.
// Missing, tampered and expired tokens all fail with ErrUnauthorized.
func (t *TokenIssuer) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrUnauthorized
		}
		return t.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, models.ErrUnauthorized
	}
	return claims, nil
}
