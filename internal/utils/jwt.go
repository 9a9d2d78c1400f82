package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by [TokenExpiry] for opaque (non-JWT) tokens.
var ErrNotJWT = errors.New("token is not a JWT")

// TokenExpiry reads the "exp" claim of a JWT without verifying its signature.
// The API owns verification; the client only needs to know whether sending
// the token is pointless. ok is false when the token carries no exp claim.
func TokenExpiry(tokenString string) (exp time.Time, ok bool, err error) {
	tokenString = strings.TrimSpace(tokenString)
	if strings.Count(tokenString, ".") != 2 {
		return time.Time{}, false, ErrNotJWT
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read exp claim: %w", err)
	}
	if expiresAt == nil {
		return time.Time{}, false, nil
	}

	return expiresAt.Time, true, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid bearer authorization header")
	}
	return strings.TrimSpace(token), nil
}
