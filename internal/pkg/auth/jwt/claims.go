package jwt

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is the subset of the API's token claims the client cares about.
// The client never verifies signatures; it only reads these values for display.
type Claims struct {
	jwt.StandardClaims
}

// Expiry returns the expiry time, or the zero time when the token carries no exp claim.
func (c *Claims) Expiry() time.Time {
	if c.StandardClaims.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.StandardClaims.ExpiresAt, 0)
}

// Expired reports whether the token carries an exp claim that lies before now.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && now.After(exp)
}
