package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"innoreg/internal/config"
	"innoreg/internal/handler"
	"innoreg/internal/model"
	"innoreg/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	adminHandler *handler.AdminHandler,
	statsHandler *handler.StatsHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(RequestTimeout(cfg.RequestTimeout))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// The original client sends the token in x-auth-token; a standard
	// Bearer header works too.
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:x-auth-token,header:Authorization:Bearer ",
	})

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/stats", statsHandler.Summary)
	api.POST("/feedback", feedbackHandler.Submit)

	// Project gallery: reads are public, writes require authentication.
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Get)
	api.POST("/projects", projectHandler.Create, jwtMiddleware)
	api.DELETE("/projects/:id", projectHandler.Delete, jwtMiddleware)
	api.PATCH("/projects/:id/like", projectHandler.Like, jwtMiddleware)

	// Category convenience surfaces over the same engine.
	for path, category := range map[string]string{
		"robotics": model.CategoryRobotics,
		"drones":   model.CategoryDrones,
	} {
		h := projectHandler.ForCategory(category)
		g := api.Group("/" + path)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", h.Create, jwtMiddleware)
		g.DELETE("/:id", h.Delete, jwtMiddleware)
	}

	// Moderation dashboard: JWT plus a fresh role check on every call.
	admin := api.Group("/admin", jwtMiddleware, AdminRequired(userRepo, log))
	admin.GET("/projects", adminHandler.ListProjects)
	admin.PUT("/projects/:id/status", adminHandler.SetStatus)
	admin.PUT("/projects/:id/feature", adminHandler.ToggleFeature)
	admin.GET("/feedback", adminHandler.ListFeedback)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
