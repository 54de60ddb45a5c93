package app

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentbrasil/rentbrasil/internal/observability"
	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
	"github.com/rentbrasil/rentbrasil/internal/shared"
)

const adminRealm = "rent-admin"

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
}

// MiddlewareStack installs the global middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					logger.Warn("secure headers blocked request", slog.Any("error", err))
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		middleware.Compress(5),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, cfg.Metrics.Middleware)
	}
	return middlewares
}

// SelectionWriteLimit throttles changes to the shared condominium selection.
func SelectionWriteLimit() func(http.Handler) http.Handler {
	return httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "selection changed too often")
		}),
	)
}

// AdminAuth guards the admin surface with HTTP basic auth. The password is
// checked against a bcrypt hash and the authenticated user is stored as the
// request principal.
func AdminAuth(user, passwordHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	hash := []byte(passwordHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !checkCredentials(user, hash, username, password) {
				if ok {
					logger.Warn("admin authentication failed", slog.String("user", username), slog.String("path", r.URL.Path))
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="`+adminRealm+`", charset="UTF-8"`)
				httpx.RespondError(w, shared.ErrInvalidCredentials)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), shared.Principal{Username: username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func checkCredentials(user string, hash []byte, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
	// Always hash, even for an unknown user.
	passOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return userOK && passOK
}
