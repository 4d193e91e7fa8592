package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiagomuniz-ia/agendapro-final/internal/auth"
	"github.com/tiagomuniz-ia/agendapro-final/internal/service"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/health"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/middleware"
)

// NewRouter creates a chi router with all auth service routes registered.
func NewRouter(
	authService *service.AuthService,
	sessions *auth.SessionManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("auth"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(authService, logger)

	// Token validator that bridges to the session manager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := sessions.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			ID:    claims.ID,
			Email: claims.Email,
			Nome:  claims.Nome,
			Cargo: claims.Cargo,
		}, nil
	}

	r.Route("/api", func(r chi.Router) {
		// Public login endpoint.
		r.With(ContentTypeJSON).Post("/login", authHandler.Login)

		// Token verification requires a bearer token.
		r.With(middleware.Auth(tokenValidator)).Get("/verify-token", authHandler.VerifyToken)
	})

	return r
}
