// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"commons/internal/cache"
	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/middleware"
	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/roles"
	"commons/internal/seed"
	"commons/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	communityRepo  repository.CommunityRepository
	categoryRepo   repository.CategoryRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	membershipRepo repository.MembershipRepository
	reactionRepo   repository.ReactionRepository
	userRepo       repository.UserRepository

	communityService  *service.CommunityService
	categoryService   *service.CategoryService
	postService       *service.PostService
	commentService    *service.CommentService
	membershipService *service.MembershipService
	reactionService   *service.ReactionService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	// Reference data must exist before the registry snapshot is taken.
	if err := seed.Roles(db); err != nil {
		return nil, fmt.Errorf("role catalog seed failed: %w", err)
	}

	registry, err := roles.Load(context.Background(), db)
	if err != nil {
		return nil, fmt.Errorf("role catalog load failed: %w", err)
	}

	server, err := NewServerWithDeps(cfg, db, redisClient, registry)
	if err != nil {
		return nil, err
	}

	// Registered here rather than in NewServerWithDeps so that tests can
	// build multiple servers without tripping duplicate collector
	// registration in the default Prometheus registry.
	server.promMiddleware = middleware.InitMetrics("commons-api")
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, registry *roles.Registry) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
	}

	server.communityRepo = repository.NewCommunityRepository(db, cfg.CascadePolicy)
	server.categoryRepo = repository.NewCategoryRepository(db)
	server.postRepo = repository.NewPostRepository(db)
	server.commentRepo = repository.NewCommentRepository(db)
	server.membershipRepo = repository.NewMembershipRepository(db)
	server.reactionRepo = repository.NewReactionRepository(db)
	server.userRepo = repository.NewUserRepository(db)

	server.membershipService = service.NewMembershipService(
		server.membershipRepo, server.communityRepo, server.userRepo, registry)
	server.communityService = service.NewCommunityService(
		server.communityRepo, server.membershipRepo, server.membershipService, registry)
	server.categoryService = service.NewCategoryService(
		server.categoryRepo, server.communityRepo, server.postRepo)
	server.postService = service.NewPostService(
		server.postRepo, server.categoryRepo, server.communityRepo, server.membershipService)
	server.commentService = service.NewCommentService(
		server.commentRepo, server.postRepo, server.membershipService)
	server.reactionService = service.NewReactionService(
		server.reactionRepo, server.postRepo, server.commentRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting per IP
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public browse routes
	communities := api.Group("/communities")
	communities.Get("/", s.GetCommunities)
	communities.Get("/check-name", s.CheckCommunityName)
	communities.Get("/:communityId/members", s.GetMembers)
	communities.Get("/:communityId/categories/check-name", s.CheckCategoryName)
	communities.Get("/:communityId/categories/:categoryId", s.GetCategory)
	communities.Get("/:communityId/categories", s.GetCategories)
	communities.Get("/:communityId/posts/:postId/content", s.GetPostContent)
	communities.Get("/:communityId/posts/:postId/comments", s.GetComments)
	communities.Get("/:communityId/posts/:postId", s.GetPost)
	communities.Get("/:communityId/posts", s.GetPosts)
	communities.Get("/:communityId", s.GetCommunity)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)
	pc := protected.Group("/communities")

	pc.Post("/", middleware.RateLimit(
		s.redis, middleware.CreateCommunityLimit), s.CreateCommunity)
	pc.Put("/:communityId", s.UpdateCommunity)
	pc.Patch("/:communityId/picture", s.ChangeCommunityPicture)
	pc.Delete("/:communityId", s.DeleteCommunity)

	// Membership and role routes
	pc.Post("/:communityId/roles", s.AssignRole)
	pc.Get("/:communityId/roles/:userId", s.GetMemberRole)
	pc.Delete("/:communityId/members/:userId", s.RemoveMember)

	// Category routes
	pc.Post("/:communityId/categories", s.CreateCategory)
	pc.Put("/:communityId/categories/:categoryId", s.UpdateCategory)
	pc.Delete("/:communityId/categories/:categoryId", s.DeleteCategory)
	pc.Post("/:communityId/categories/:categoryId/migrate-posts", s.MigratePosts)

	// Post routes
	pc.Post("/:communityId/posts", middleware.RateLimit(
		s.redis, middleware.CreatePostLimit), s.CreatePost)
	pc.Put("/:communityId/posts/:postId", s.UpdatePost)
	pc.Delete("/:communityId/posts/:postId", s.DeletePost)
	pc.Post("/:communityId/posts/:postId/reactions", middleware.RateLimit(
		s.redis, middleware.ToggleReactionLimit), s.TogglePostReaction)

	// Comment routes
	pc.Post("/:communityId/posts/:postId/comments", middleware.RateLimit(
		s.redis, middleware.CreateCommentLimit), s.CreateComment)
	pc.Put("/:communityId/comments/:commentId", s.UpdateComment)
	pc.Delete("/:communityId/comments/:commentId", s.DeleteComment)
	pc.Post("/:communityId/comments/:commentId/reactions", middleware.RateLimit(
		s.redis, middleware.ToggleReactionLimit), s.ToggleCommentReaction)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API keeps working without Redis, just slower.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Commons API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewStoreError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
