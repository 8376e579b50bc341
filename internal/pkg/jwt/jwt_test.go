package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken(42, "student@ur.ac.rw", "student")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "student@ur.ac.rw", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := New("secret", -time.Minute)

	token, err := svc.GenerateToken(1, "a@ur.ac.rw", "student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).GenerateToken(1, "a@ur.ac.rw", "student")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{"user_id": 1})
	raw, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(raw)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
