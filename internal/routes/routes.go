package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"FOODLENS_BACK-END/internal/handlers"
	"FOODLENS_BACK-END/internal/middleware"
)

// SetupRoutes configures all application routes on mux.
// tokens is nil when token issuance is disabled; /profile is then not routed.
func SetupRoutes(mux *http.ServeMux, authHandler *handlers.AuthHandler, foodHandler *handlers.FoodHandler, healthHandler *handlers.HealthHandler, tokens *middleware.TokenIssuer) {
	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Image analysis
	mux.HandleFunc("/analyze-food", foodHandler.AnalyzeFood)

	// Authentication routes
	mux.HandleFunc("/register", authHandler.Register)
	mux.HandleFunc("/login", authHandler.Login)
	if tokens != nil {
		mux.HandleFunc("/profile", tokens.AuthMiddleware(authHandler.GetProfile))
	}

	// API docs
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("/", healthHandler.Root)
}
