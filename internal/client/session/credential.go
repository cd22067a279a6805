package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialExpired reports whether token is a JWT whose exp claim is not
// after now. The signature is not checked; only the API can do that. Tokens
// that are not JWTs are opaque and never considered expired.
func credentialExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
