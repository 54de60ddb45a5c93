package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentbrasil/rentbrasil/internal/shared"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAdminAuth(t *testing.T) {
	hash := testHash(t, "s3nha")
	var seen string
	guarded := AdminAuth("admin", hash, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := shared.PrincipalFromContext(r.Context())
		require.True(t, ok)
		seen = p.Username
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name     string
		user     string
		password string
		basic    bool
		want     int
	}{
		{name: "valid", user: "admin", password: "s3nha", basic: true, want: http.StatusNoContent},
		{name: "wrong password", user: "admin", password: "nope", basic: true, want: http.StatusUnauthorized},
		{name: "wrong user", user: "root", password: "s3nha", basic: true, want: http.StatusUnauthorized},
		{name: "no credentials", want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/admin/people", nil)
			if tc.basic {
				req.SetBasicAuth(tc.user, tc.password)
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), `Basic realm="rent-admin"`)
				assert.Empty(t, seen)
				var problem map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				assert.Equal(t, "Unauthorized", problem["title"])
			} else {
				assert.Equal(t, "admin", seen)
			}
		})
	}
}

func TestMiddlewareStackSetsSecurityHeaders(t *testing.T) {
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	stack := MiddlewareStack(MiddlewareConfig{Config: &Config{AppEnv: "development"}})
	for i := len(stack) - 1; i >= 0; i-- {
		handler = stack[i](handler)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestSelectionWriteLimit(t *testing.T) {
	limited := SelectionWriteLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	var last int
	for i := 0; i < 31; i++ {
		req := httptest.NewRequest(http.MethodPut, "/catalog/selection", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
