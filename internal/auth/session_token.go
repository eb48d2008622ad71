package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionTokenVerifier validates the hosting platform's embedded-app session
// tokens. Tokens are HS256-signed with the app secret; the dest claim names
// the shop the request belongs to and aud must match the app's API key.
type SessionTokenVerifier struct {
	apiKey string
	secret []byte
}

// NewSessionTokenVerifier builds a verifier from the app credentials.
func NewSessionTokenVerifier(apiKey, secret string) *SessionTokenVerifier {
	return &SessionTokenVerifier{apiKey: apiKey, secret: []byte(secret)}
}

// SessionClaims describes the platform session token payload.
type SessionClaims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// ShopDomain extracts the shop's domain from the dest claim, which the
// platform sends as a full origin ("https://shop.example.com").
func (c *SessionClaims) ShopDomain() string {
	return strings.TrimPrefix(strings.TrimPrefix(c.Dest, "https://"), "http://")
}

// Verify parses and validates a session token, returning its claims.
func (v *SessionTokenVerifier) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Dest == "" {
		return nil, errors.New("missing dest claim")
	}
	if v.apiKey != "" && !audienceMatches(claims.Audience, v.apiKey) {
		return nil, errors.New("token not issued for this app")
	}
	return claims, nil
}

// Sign issues a session token for the shop. Used by tests and local tooling;
// in production the platform signs tokens.
func (v *SessionTokenVerifier) Sign(shopDomain string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Dest: fmt.Sprintf("https://%s", shopDomain),
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{v.apiKey},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func audienceMatches(audience jwt.ClaimStrings, apiKey string) bool {
	for _, aud := range audience {
		if aud == apiKey {
			return true
		}
	}
	return false
}
