// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	signer         *auth.Signer
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Use this in tests or when a bootstrap layer establishes the DB itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		signer:         auth.NewSigner(cfg.SessionSecret),
		promMiddleware: fiberprometheus.New("inkwell"),
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
	}
	server.postService = service.NewPostService(postRepo, likeRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)

	return server
}

// SetupMiddleware configures the application middleware stack. Session
// resolution runs before the context middleware so the structured logger
// sees the user id.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CurrentUser(s.signer, s.userRepo))
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/", s.Home)

	app.Get("/signup", s.SignupForm)
	app.Post("/signup", s.Signup)
	app.Get("/login", s.LoginForm)
	app.Post("/login", s.Login)
	app.Get("/logout", s.Logout)

	// Specific /blog routes must precede the generic /blog/:postID pair.
	app.Get("/blog/newpost", s.NewPostForm)
	app.Post("/blog/newpost", s.CreatePost)
	app.Get("/blog/deletepost/:postID", s.DeletePost)
	app.Get("/blog/editpost/:postID", s.EditPostForm)
	app.Post("/blog/editpost/:postID", s.EditPost)
	app.Get("/blog/deletecomment/:postID/:commentID", s.DeleteComment)
	app.Get("/blog/editcomment/:postID/:commentID", s.EditCommentForm)
	app.Post("/blog/editcomment/:postID/:commentID", s.EditComment)
	app.Get("/blog/:postID", s.ShowPost)
	app.Post("/blog/:postID", s.PostActions)
}

// HealthCheck reports readiness by pinging the database.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// currentUser returns the user resolved by the session middleware, or nil
// for an anonymous request.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	return middleware.UserFromLocals(c)
}

// parseID reads a numeric path parameter. A malformed value responds with a
// 404 and returns ok=false; since every ID route is built from links the
// application itself emits, a bad value is indistinguishable from a missing
// record.
func (s *Server) parseID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Record", raw))
		return 0, false
	}
	return uint(id), true
}

// redirectWithError sends the browser back to location with a user-facing
// message in the error query parameter; denials are never silent.
func redirectWithError(c *fiber.Ctx, location, msg string) error {
	return c.Redirect(location + "?error=" + url.QueryEscape(msg))
}

// redirectLogin is the standard response for anonymous mutating requests.
func redirectLogin(c *fiber.Ctx, msg string) error {
	return redirectWithError(c, "/login", msg)
}

// respondServiceError converts a service error into the response the flow
// calls for: validation problems redisplay (400), missing entities 404,
// denials redirect back with the reason, anything else is a 500.
func respondServiceError(c *fiber.Ctx, err error, backTo string) error {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		case models.CodeAuthorization:
			return redirectWithError(c, backTo, appErr.Message)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
