package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "segredo-de-teste"

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate(secret, "user-1", "operador", "logflow", 5)
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "operador", role)
}

func TestParse_Rechazos(t *testing.T) {
	expirado, err := Generate(secret, "u", "admin", "logflow", -1)
	require.NoError(t, err)
	otro, err := Generate("outro", "u", "admin", "logflow", 5)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u", Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	sinExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u", Role: "admin"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expirado":    expirado,
		"otro secret": otro,
		"alg none":    none,
		"sin exp":     sinExp,
		"malformado":  "x.y.z",
	} {
		_, _, err := Parse(secret, tok)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestParse_SubjectComoFallback(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Role: "consulta",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	userID, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
	assert.Equal(t, "consulta", role)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "admin", "logflow", 5)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, _, err = Parse("", "x.y.z")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
