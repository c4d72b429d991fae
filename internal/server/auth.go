package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthConfig guards the mutating personnel routes. An empty secret leaves the
// API open, which is the single-user local default.
type AuthConfig struct {
	JWTSecret string
	Logger    *zap.Logger
}

// LocalActor is recorded when the API runs without auth.
const LocalActor = "local-user"

type Principal struct {
	ActorID string
	Source  string
}

type principalKey struct{}

func (c AuthConfig) enabled() bool { return strings.TrimSpace(c.JWTSecret) != "" }

func (c AuthConfig) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func actorFromContext(ctx context.Context) string {
	if p, ok := principalFromContext(ctx); ok && p.ActorID != "" {
		return p.ActorID
	}
	return LocalActor
}

func authenticateJWT(token string, secret string) (Principal, error) {
	if strings.TrimSpace(secret) == "" {
		return Principal{}, errors.New("jwt secret not configured")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid {
		return Principal{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return Principal{}, errors.New("subject claim required")
	}
	return Principal{ActorID: claims.Subject, Source: "jwt"}, nil
}

// SignToken mints an HS256 token for subject, valid for ttl.
func SignToken(secret, subject string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("jwt secret not configured")
	}
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject required")
	}
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// newAuthMiddleware requires a bearer token on mutating personnel requests.
// A valid token on any request sets the principal.
func newAuthMiddleware(personnelPath string, cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !cfg.enabled() {
				next.ServeHTTP(w, req)
				return
			}
			authz := strings.TrimSpace(req.Header.Get("Authorization"))
			if authz != "" {
				token, ok := bearerToken(authz)
				if !ok {
					respondStatusError(w, newAPIError(http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil))
					return
				}
				principal, err := authenticateJWT(token, cfg.JWTSecret)
				if err != nil {
					cfg.logger().Info("rejected bearer token", zap.Error(err))
					respondStatusError(w, newAPIError(http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil))
					return
				}
				next.ServeHTTP(w, req.WithContext(withPrincipal(req.Context(), principal)))
				return
			}
			if !readOnly(req.Method) && strings.HasPrefix(req.URL.Path, personnelPath) {
				respondStatusError(w, newAPIError(http.StatusUnauthorized, "unauthorized", "authentication required", nil))
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func respondStatusError(w http.ResponseWriter, err huma.StatusError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.GetStatus())
	_ = json.NewEncoder(w).Encode(err)
}
