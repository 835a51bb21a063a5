package oidc

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestInsecureVerifierParsesClaims(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "emp-1",
		"email": "e@example.com",
		"name":  "E Mployee",
		"roles": []string{"reviewer"},
	})
	raw, err := tok.SignedString([]byte("whatever"))
	require.NoError(t, err)

	v := NewInsecureVerifier()
	parsed, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, parsed.Claims(&claims))
	require.Equal(t, "emp-1", claims["sub"])
	require.Equal(t, "e@example.com", claims["email"])
}

func TestInsecureVerifierRejectsGarbage(t *testing.T) {
	v := NewInsecureVerifier()
	_, err := v.Verify(context.Background(), "not-a-jwt")
	require.Error(t, err)
}
