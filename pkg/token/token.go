package token

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. Both fields are required; a token
// missing either is rejected.
type Claims struct {
	UserID int
	Email  string
}

// Generate creates a signed access token for a user.
func Generate(userID int, email, secret string, expire time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"user_email": email,
		"exp":        time.Now().Add(expire).Unix(),
		"iat":        time.Now().Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates a token and extracts its claims. Expired or malformed
// tokens and tokens missing a required claim all fail.
func Parse(tokenStr, secret string) (Claims, error) {
	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}

	if !t.Valid {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenMalformed
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok {
		return Claims{}, jwt.ErrTokenMalformed
	}

	email, ok := mapClaims["user_email"].(string)
	if !ok || email == "" {
		return Claims{}, jwt.ErrTokenMalformed
	}

	return Claims{UserID: int(userIDFloat), Email: email}, nil
}

// Extract returns the bearer token from an Authorization header, or "".
func Extract(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
