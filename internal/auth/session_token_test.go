package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	verifier := NewSessionTokenVerifier("api-key", "app-secret")

	token, err := verifier.Sign("tienda.example.com", time.Minute)
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "https://tienda.example.com", claims.Dest)
	require.Equal(t, "tienda.example.com", claims.ShopDomain())
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
	signer := NewSessionTokenVerifier("api-key", "app-secret")
	verifier := NewSessionTokenVerifier("api-key", "other-secret")

	token, err := signer.Sign("tienda.example.com", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestSessionTokenWrongAudienceRejected(t *testing.T) {
	signer := NewSessionTokenVerifier("other-app", "app-secret")
	verifier := NewSessionTokenVerifier("api-key", "app-secret")

	token, err := signer.Sign("tienda.example.com", time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestSessionTokenExpiredRejected(t *testing.T) {
	verifier := NewSessionTokenVerifier("api-key", "app-secret")

	token, err := verifier.Sign("tienda.example.com", -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}
