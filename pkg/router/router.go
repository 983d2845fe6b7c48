package router

import (
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/api"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/ws"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/config"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/di"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/errors"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Hub       *ws.Hub
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	// Use the container's logger
	logger.SetGlobal(container.Logger)

	// Load configuration
	cfg := config.Get()

	// Configure Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	engine := gin.New()
	engine.SetTrustedProxies(cfg.Security.TrustedProxies)

	// Tag every request before anything logs it
	engine.Use(middleware.RequestIDMiddleware())

	// Use the logger middleware first to capture all requests
	engine.Use(logger.Middleware(container.Logger))

	// Add custom error handler middleware
	engine.Use(errors.ErrorHandler())

	// Add custom recovery middleware with structured logging instead of default
	engine.Use(errors.RecoveryWithLogger())

	// Create rate limiter with default options
	rateLimiter := middleware.NewRateLimiter(container.Logger)

	// Apply rate limiting to all routes
	engine.Use(rateLimiter.Middleware())

	// Initialize the realtime layer: presence registry plus hub wired to
	// the message service for the persistence half of delivery
	presence := ws.NewPresence()
	hub := ws.NewHub(presence, container.MessageService, container.Metrics, container.Logger)

	// Start the hub
	go hub.Run()

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Hub:       hub,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	// Add CORS middleware
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	// Create JWT auth middleware
	jwtAuth := middleware.JWTAuthMiddleware(r.Container.JWTService, r.Logger)

	// Initialize controllers
	authHandler := api.NewAuthHandler(r.Container.UserService, r.Container.MailService, r.Logger)
	messageController := api.NewMessageController(r.Container.MessageService, r.Logger)
	userController := api.NewUserController(r.Container.UserService, r.Container.PostService, r.Logger)
	connectionController := api.NewConnectionController(r.Container.ConnectionService, r.Logger)
	postController := api.NewPostController(r.Container.PostService, r.Logger)
	mailController := api.NewMailController(
		r.Container.MailService,
		r.Container.UserService,
		r.Container.ConnectionService,
		r.Logger,
	)

	// Health endpoints stay outside the authenticated group
	r.setupHealthRoutes()

	// Public auth routes
	authRoutes := r.Engine.Group("/api/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", jwtAuth, authHandler.Me)
	}

	// Protected routes (require authentication)
	apiRoutes := r.Engine.Group("/api")
	apiRoutes.Use(jwtAuth)
	{
		messageController.RegisterRoutes(apiRoutes)
		userController.RegisterRoutes(apiRoutes)
		connectionController.RegisterRoutes(apiRoutes)
		postController.RegisterRoutes(apiRoutes)
		mailController.RegisterRoutes(apiRoutes)
	}

	// WebSocket route; the handler does its own token check before the
	// upgrade, so it is mounted outside the JWT middleware
	wsHandler := ws.NewHandler(r.Hub, r.Container.JWTService)
	wsHandler.RegisterRoutes(r.Engine)
}

// corsMiddleware allows browser clients on the configured origins to
// reach the API, including the headers the websocket upgrade needs.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origins[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, X-CSRF-Token, Authorization, Origin, Upgrade, Connection, Cache-Control")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Upgrade, Connection")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
