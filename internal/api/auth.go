package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/types"
)

type callerKey struct{}

// CallerFromContext returns the account authenticated for the request.
func CallerFromContext(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey{}).(string)
	return caller
}

// Authenticator identifies API callers by HS256 bearer tokens. The token
// subject is the calling account.
type Authenticator struct {
	secret []byte
	issuer string
	maxTTL time.Duration
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret: []byte(strings.TrimSpace(cfg.JwtSecret)),
		issuer: cfg.Issuer,
		maxTTL: cfg.MaxTTL,
	}
}

// SignToken issues a token for subject valid for ttl.
func (a *Authenticator) SignToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 || ttl > a.maxTTL {
		return "", fmt.Errorf("ttl must be in (0, %s]", a.maxTTL)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Authenticate validates token and returns its subject.
func (a *Authenticator) Authenticate(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	if claims.IssuedAt == nil {
		return "", errors.New("token has no issue time")
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) > a.maxTTL {
		return "", fmt.Errorf("token lifetime exceeds %s", a.maxTTL)
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, r, types.NewErrorWithMsg(http.StatusUnauthorized, types.Unauthorized, "missing bearer token"))
			return
		}

		caller, err := a.Authenticate(token)
		if err != nil {
			writeError(w, r, types.NewError(http.StatusUnauthorized, types.Unauthorized, fmt.Errorf("invalid token: %w", err)))
			return
		}

		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
