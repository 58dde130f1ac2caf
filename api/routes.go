package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/openfunnel/mailtriage/api/handlers"
	"github.com/openfunnel/mailtriage/api/middleware"
	"github.com/openfunnel/mailtriage/internal/repository"
	"github.com/openfunnel/mailtriage/internal/tracing"
	"github.com/openfunnel/mailtriage/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// Health check and status endpoints
	r.GET("/health", handlers.HealthCheck)
	r.GET("/status", handlers.Status(s.MailboxService, s.TriageService))

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-OPENFUNNEL-API-KEY",
		ValidAPIKey: apikey,
	})

	// API group with version
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	{
		actions := api.Group("/actions")
		{
			actions.GET("", handlers.ListActions(repos.TriageActionRepository))
		}

		leads := api.Group("/leads")
		{
			leads.GET("", handlers.ListLeads(repos.LeadRepository))
			leads.POST("", handlers.AddLead(repos.LeadRepository))
		}

		replies := api.Group("/replies")
		{
			replies.POST("", handlers.SendReply(s.MailboxService))
		}
	}
}
