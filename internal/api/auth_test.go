package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/testutil"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JwtSecret: testSecret,
		Issuer:    "staking-rewards-ledger",
		MaxTTL:    time.Hour,
	}
}

func TestAuthenticator(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())
	caller := testutil.RandomAddress(t)

	t.Run("round trip", func(t *testing.T) {
		token, err := auth.SignToken(caller, time.Minute)
		require.NoError(t, err)

		subject, err := auth.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, caller, subject)
	})

	t.Run("ttl bounds", func(t *testing.T) {
		_, err := auth.SignToken(caller, 2*time.Hour)
		assert.Error(t, err)
		_, err = auth.SignToken(caller, 0)
		assert.Error(t, err)
		_, err = auth.SignToken("", time.Minute)
		assert.Error(t, err)
	})

	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	now := time.Now()

	tests := []struct {
		name   string
		method jwt.SigningMethod
		key    interface{}
		claims jwt.RegisteredClaims
	}{
		{
			name:   "wrong secret",
			method: jwt.SigningMethodHS256,
			key:    []byte("fedcba9876543210fedcba9876543210"),
			claims: jwt.RegisteredClaims{
				Issuer: "staking-rewards-ledger", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			},
		},
		{
			name:   "wrong algorithm",
			method: jwt.SigningMethodHS512,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer: "staking-rewards-ledger", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			},
		},
		{
			name:   "wrong issuer",
			method: jwt.SigningMethodHS256,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer: "someone-else", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			},
		},
		{
			name:   "expired",
			method: jwt.SigningMethodHS256,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer: "staking-rewards-ledger", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now.Add(-time.Hour)), ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			},
		},
		{
			name:   "no expiry",
			method: jwt.SigningMethodHS256,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer: "staking-rewards-ledger", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now),
			},
		},
		{
			name:   "lifetime too long",
			method: jwt.SigningMethodHS256,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer: "staking-rewards-ledger", Subject: caller,
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(3 * time.Hour)),
			},
		},
		{
			name:   "no subject",
			method: jwt.SigningMethodHS256,
			key:    []byte(testSecret),
			claims: jwt.RegisteredClaims{
				Issuer:   "staking-rewards-ledger",
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Authenticate(sign(t, tt.method, tt.key, tt.claims))
			assert.Error(t, err)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	auth := NewAuthenticator(testAuthConfig())
	caller := testutil.RandomAddress(t)

	var seen string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := auth.SignToken(caller, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{name: "missing header", expected: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, expected: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", expected: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + token, expected: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer " + token, expected: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected == http.StatusNoContent {
				assert.Equal(t, caller, seen)
			} else {
				assert.Empty(t, seen)
			}
		})
	}
}
