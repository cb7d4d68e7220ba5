package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"portfolio/docs"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/metrics"
	"portfolio/internal/service"
)

// Dependencies carries everything the route table needs. Metrics and
// Gatherer are optional.
type Dependencies struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *gorm.DB
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
	AuthService    service.AuthService
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProjectHandler *handler.ProjectHandler
	CommentHandler *handler.CommentHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: deps.Config.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	if deps.Config.SwaggerHost != "" {
		docs.SwaggerInfo.Host = deps.Config.SwaggerHost
	}

	e.GET("/healthz", healthz(deps.DB))
	if deps.Gatherer != nil {
		e.GET("/metrics", metrics.Handler(deps.Gatherer))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := requireToken(deps.AuthService)

	// Auth
	e.POST("/signup", deps.AuthHandler.Signup)
	e.POST("/signin", deps.AuthHandler.Signin)
	e.GET("/verify-token", deps.AuthHandler.VerifyToken, secured)
	e.POST("/verify-token", deps.AuthHandler.VerifyToken, secured)
	e.POST("/signout", deps.AuthHandler.Signout, secured)

	// Users
	e.GET("/users", deps.UserHandler.ListUsers)
	e.POST("/users", deps.UserHandler.CreateUser)
	e.GET("/users/:id", deps.UserHandler.GetUser)
	e.PUT("/users/:id", deps.UserHandler.UpdateUser, secured)
	e.DELETE("/users/:id", deps.UserHandler.DeleteUser, secured)
	e.GET("/users/:id/projects", deps.UserHandler.ListUserProjects)

	// Projects
	e.GET("/projects", deps.ProjectHandler.ListProjects)
	e.POST("/projects", deps.ProjectHandler.CreateProject, secured)
	e.GET("/projects/:id", deps.ProjectHandler.GetProject)
	e.PUT("/projects/:id", deps.ProjectHandler.UpdateProject, secured)
	e.DELETE("/projects/:id", deps.ProjectHandler.DeleteProject, secured)
	e.GET("/projects/:id/comments", deps.ProjectHandler.ListProjectComments)

	// Comments
	e.GET("/comments", deps.CommentHandler.ListComments)
	e.POST("/comments", deps.CommentHandler.CreateComment, secured)
	e.GET("/comments/:id", deps.CommentHandler.GetComment)
	e.PUT("/comments/:id", deps.CommentHandler.UpdateComment, secured)
	e.DELETE("/comments/:id", deps.CommentHandler.DeleteComment, secured)
}

// requireToken accepts only requests carrying a valid, unrevoked bearer token.
// Verified claims are stored under handler.ClaimsContextKey.
func requireToken(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := authService.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return authError(apperrors.ErrMissingToken)
			}
			return authError(apperrors.ErrInvalidToken)
		},
	})
}

func authError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func healthz(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request().Context())
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, apperrors.ErrorResponse{
					Error: "database unavailable",
					Code:  "UNAVAILABLE",
				}).SetInternal(err)
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
