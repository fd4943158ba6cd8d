package middleware

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/calebds/tracker/internal/api/actorctx"
	"github.com/calebds/tracker/internal/api/auth"
)

type AuthMiddleware struct {
	Env       string
	PublicKey *rsa.PublicKey
	Next      http.Handler
}

func (m AuthMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// In dev, requests without an Authorization header pass through so local
	// tooling is not blocked.
	if strings.EqualFold(strings.TrimSpace(m.Env), "dev") {
		if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
			m.Next.ServeHTTP(w, r)
			return
		}
	}

	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(authz, "Bearer ") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"missing bearer token"}`))
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if tokenString == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"empty bearer token"}`))
		return
	}

	claims, err := auth.ParseAndValidateRS256(tokenString, m.PublicKey)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid token"}`))
		return
	}

	ctx := actorctx.WithOperator(r.Context(), claims.Operator)
	m.Next.ServeHTTP(w, r.WithContext(ctx))
}
