// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"

	assessmenthandler "orgair_backend/internal/feature/assessments/transport/handler"
	authhandler "orgair_backend/internal/feature/auth/transport/handler"
	companyhandler "orgair_backend/internal/feature/companies/transport/handler"
	documenthandler "orgair_backend/internal/feature/documents/transport/handler"
	industryhandler "orgair_backend/internal/feature/industries/transport/handler"
	"orgair_backend/internal/platform/http/handler"
	jwtmw "orgair_backend/internal/platform/jwt"
	"orgair_backend/internal/shared/ratelimiter"
)

// Handlers bundles every HTTP handler the router mounts. Documents may
// be nil when no blob store is configured; the routes are then omitted.
type Handlers struct {
	Auth        *authhandler.AuthHandler
	Industries  *industryhandler.IndustryHandler
	Companies   *companyhandler.CompanyHandler
	Assessments *assessmenthandler.AssessmentHandler
	Documents   *documenthandler.DocumentHandler
	CacheStats  *handler.CacheStatsHandler
}

// NewRouter builds the gin engine with public and authenticated routes.
// loginLimiter throttles the credential endpoints; nil disables it.
func NewRouter(h Handlers, jwtSecret string, loginLimiter *ratelimiter.Limiter) *gin.Engine {
	r := gin.Default()

	// Public routes. Credential endpoints carry a per-IP throttle.
	r.GET("/healthz", handler.Health)
	throttled := ratelimiter.Middleware(loginLimiter)
	r.POST("/signup", throttled, h.Auth.Signup)
	r.POST("/login", throttled, h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)

	// Everything under /api requires a valid access token.
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(jwtSecret))
	{
		api.GET("/industries", h.Industries.List)
		api.GET("/industries/:id", h.Industries.Get)
		api.GET("/industries/:id/weights", h.Industries.GetWeights)

		api.POST("/companies", h.Companies.Create)
		api.GET("/companies", h.Companies.List)
		api.GET("/companies/:id", h.Companies.Get)
		api.PUT("/companies/:id", h.Companies.Update)
		api.DELETE("/companies/:id", h.Companies.Delete)

		api.POST("/companies/:id/assessments", h.Assessments.Create)
		api.GET("/companies/:id/assessments", h.Assessments.ListByCompany)
		api.GET("/assessments/:id", h.Assessments.Get)
		api.POST("/assessments/:id/scores", h.Assessments.AddScore)
		api.POST("/assessments/:id/status", h.Assessments.Transition)

		if h.Documents != nil {
			api.POST("/documents", h.Documents.Upload)
			api.GET("/documents", h.Documents.List)
			api.GET("/documents/:id", h.Documents.Get)
			api.GET("/documents/:id/download", h.Documents.Download)
		}

		api.GET("/cache/stats", h.CacheStats.Stats)
	}

	return r
}
