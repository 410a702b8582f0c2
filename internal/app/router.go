package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ticketportal/internal/handler"
	"ticketportal/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PaymentHandler   *handler.PaymentHandler
	FavoritesHandler *handler.FavoritesHandler
	ArtistHandler    *handler.ArtistHandler
	AuthHandler      *handler.AuthHandler
	AdminHandler     *handler.AdminHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
	AllowedOrigin    string
	JWTSecret        string
	AdminRole        string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigin))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.SessionMiddleware(deps.JWTSecret))
	router.Use(middleware.TransactionAttributes())

	// Authenticated groups replay mutations only after the session check.
	authenticated := []gin.HandlerFunc{middleware.RequireSession()}
	if deps.RedisClient != nil {
		authenticated = append(authenticated, middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Payment result pages; the provider redirect carries no session.
		results := v1.Group("/payments/result")
		{
			results.GET("/success", deps.PaymentHandler.Success)
			results.GET("/pending", deps.PaymentHandler.Pending)
			results.GET("/failure", deps.PaymentHandler.Failure)
		}

		v1.GET("/tickets/:code/pdf", deps.PaymentHandler.TicketDocument)
		v1.GET("/artists", deps.ArtistHandler.List)

		// Credential recovery routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
			auth.GET("/verify-reset-token", deps.AuthHandler.VerifyResetToken)
			auth.POST("/reset-password", deps.AuthHandler.ResetPassword)
		}

		// Account routes.
		me := v1.Group("/me", authenticated...)
		{
			me.GET("/favorites", deps.FavoritesHandler.List)
			me.DELETE("/favorites/:eventId", deps.FavoritesHandler.Remove)
		}

		// Admin routes.
		// Event administration is authorized by the backend on every call.
		admin := v1.Group("/admin", authenticated...)
		{
			admin.GET("/events", deps.AdminHandler.ListEvents)
			admin.DELETE("/events/:id", deps.AdminHandler.DeleteEvent)
		}

		// The audit trail is served from local storage, so the role is checked here.
		outcomes := v1.Group("/admin/payments/outcomes", middleware.RequireSession(), middleware.RequireRole(deps.AdminRole))
		{
			outcomes.GET("", deps.AdminHandler.ListOutcomes)
			outcomes.GET("/:id", deps.AdminHandler.GetOutcome)
		}
	}

	return router
}
