package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo holds claims read from the auth token without signature
// verification. The backend is the verifier; the client only needs the user
// id and expiry to decide whether a stored session is worth presenting.
type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time
}

// InspectToken extracts user id and expiry from a JWT. The signature is not
// checked.
func InspectToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, errors.New("api: malformed token")
	}

	var info TokenInfo
	for _, key := range []string{"id", "_id", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			info.UserID = v
			break
		}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}

// Expired reports whether the token has an expiry in the past. Tokens
// without an exp claim never report expired.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
