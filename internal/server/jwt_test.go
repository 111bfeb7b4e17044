package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b2bfusion/fusion-engine/internal/config"
)

func testJWTService(ttl time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", TokenTTL: ttl})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, err := svc.GenerateToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := testJWTService(time.Hour).GenerateToken()
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different-secret", TokenTTL: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := testJWTService(-time.Minute).GenerateToken()
	require.NoError(t, err)

	_, err = testJWTService(time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenEmpty(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateTokenWrongSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = testJWTService(time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "operator"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService(time.Hour).ValidateToken(signed)
	assert.Error(t, err)
}
