package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantToken  string
		wantFound  bool
	}{
		{name: "standard", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi", wantFound: true},
		{name: "lowercase scheme", header: "bearer abc", wantToken: "abc", wantFound: true},
		{name: "missing header", header: "", wantFound: false},
		{name: "wrong scheme", header: "Basic abc", wantFound: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, found := ExtractBearerToken(r)
			require.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				require.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestRequireMiddleware(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(Require(codec))
	r.Get("/protected", func(w http.ResponseWriter, req *http.Request) {
		claims, ok := ClaimsFromContext(req.Context())
		require.True(t, ok)
		require.Equal(t, "acme", claims.TenantSlug)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := codec.Sign(testClaims())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusUnauthorized, resp.Code)
		require.JSONEq(t, `{"error":"unauthorized"}`, resp.Body.String())
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(Require(codec))
	r.Group(func(r chi.Router) {
		r.Use(RequireRole("ADMIN"))
		r.Post("/admin-only", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	signWithRole := func(role string) string {
		claims := testClaims()
		claims.Role = role
		token, err := codec.Sign(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+signWithRole("ADMIN"))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("member forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+signWithRole("MEMBER"))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusForbidden, resp.Code)
	})
}
