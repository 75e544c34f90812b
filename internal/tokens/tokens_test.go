package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	secret := []byte("secret")

	raw, err := SignAccessToken(42, "jane@example.com", secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := SignAccessToken(42, "jane@example.com", []byte("secret"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, []byte("other"))
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	secret := []byte("secret")
	claims := jwt.MapClaims{
		"sub":   float64(42),
		"email": "jane@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	secret := []byte("secret")
	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Minute).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, secret)
	require.Error(t, err)
}
