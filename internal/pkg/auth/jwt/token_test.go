package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.StandardClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-our-secret"))
	require.NoError(t, err)
	return s
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.StandardClaims{Subject: "User:7", ExpiresAt: exp.Unix()})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "User:7", claims.Subject)
	assert.True(t, claims.Expiry().Equal(exp))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestInspect_NoExpiry(t *testing.T) {
	claims, err := Inspect(signed(t, jwt.StandardClaims{Subject: "User:1"}))
	require.NoError(t, err)
	assert.True(t, claims.Expiry().IsZero())
	assert.False(t, claims.Expired(time.Now()))
}

func TestInspect_Opaque(t *testing.T) {
	_, err := Inspect("abc")
	assert.ErrorIs(t, err, ErrNotJWT)

	_, err = Inspect("a.b.c")
	assert.Error(t, err)
}
