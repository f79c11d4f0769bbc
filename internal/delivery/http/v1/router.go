package v1

import (
	"net/http"

	"go-studio-backend/config"
	"go-studio-backend/internal/delivery/http/middleware"
	"go-studio-backend/internal/delivery/http/response"
	"go-studio-backend/internal/domain"
	"go-studio-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	RateLimitStore ratelimit.Store
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Multipart bodies are capped just above the attachment ceiling; gin
	// buffers the rest to disk
	r.MaxMultipartMemory = 12 << 20

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes (no auth - the whole surface is public)
	contactLimit := middleware.RateLimit(deps.RateLimitStore, middleware.ContactRateLimitConfig(deps.Config))
	NewContactHandler(api, deps.ContactUC, contactLimit)

	return r
}
