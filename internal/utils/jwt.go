package utils

import (
	"time" // Time for token expiration

	"complaint_tracker/internal/domain"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carry the session projection inside the token. The persisted
// session record stays authoritative: middleware re-checks the session id so
// logout and renames invalidate older tokens.
type Claims struct {
	SessionID            string `json:"session_id"`
	Username             string `json:"username"`
	Role                 string `json:"role"`
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a signed token for an established session.
func GenerateJWT(sess domain.Session, secret string) (string, error) {
	claims := Claims{
		SessionID: sess.ID,
		Username:  sess.Username,
		Role:      sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT parses and validates a token string.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
