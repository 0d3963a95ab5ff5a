package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"timetrack/internal/auth"
	"timetrack/internal/config"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	timeLogHandler *handler.TimeLogHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(cfg)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, apperrors.Envelope{Success: true, Message: "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/exports/download/:key", exportHandler.Download)

	// Secured routes (require JWT authentication)
	secured := api.Group("", auth.Middleware(jwtService), auth.DenylistGuard(tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/profile", authHandler.GetProfile)
	secured.PUT("/auth/profile", authHandler.UpdateProfile)
	secured.PUT("/auth/change-password", authHandler.ChangePassword)

	// Owner-scoped time log routes
	secured.POST("/time-logs", timeLogHandler.Create)
	secured.GET("/time-logs", timeLogHandler.List)
	secured.GET("/time-logs/total-hours", timeLogHandler.TotalHours)
	secured.GET("/time-logs/date-range", timeLogHandler.DateRange)
	secured.GET("/time-logs/:id", timeLogHandler.Get)
	secured.PUT("/time-logs/:id", timeLogHandler.Update)
	secured.DELETE("/time-logs/:id", timeLogHandler.Delete)

	// Admin user management, permission gated
	users := secured.Group("/admin/users", auth.RequirePermission(auth.PermManageUsers))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PATCH("/:id/toggle-status", userHandler.ToggleStatus)

	// Project routes: authenticated but intentionally not role gated;
	// projects are treated as semi-public reference data.
	projects := secured.Group("/admin/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// Admin aggregate views over all users' logs
	adminLogs := secured.Group("/admin/time-logs", auth.RequirePermission(auth.PermViewAllLogs))
	adminLogs.GET("", timeLogHandler.AdminList)
	adminLogs.GET("/summary", timeLogHandler.AdminSummary)

	// Exports, gated per entity
	secured.POST("/exports/time-logs", exportHandler.ExportTimeLogs)
	secured.POST("/exports/users", exportHandler.ExportUsers,
		auth.RequirePermission(auth.PermManageUsers), auth.RequirePermission(auth.PermExportData))
	secured.POST("/exports/projects", exportHandler.ExportProjects,
		auth.RequirePermission(auth.PermExportData))
	secured.GET("/exports/stats", exportHandler.Stats,
		auth.RequirePermission(auth.PermExportData))
}

// newHTTPErrorHandler maps domain errors to the uniform response envelope.
// Internal faults keep their detail out of production responses.
func newHTTPErrorHandler(cfg *config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, apperrors.Envelope{
				Success: false,
				Error:   ve.Error(),
				Errors:  ve.Fields,
			})
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, apperrors.Envelope{
				Success: false,
				Error:   fmt.Sprintf("%v", he.Message),
			})
			return
		}

		httpErr := apperrors.MapErrorToHTTP(err)
		message := httpErr.Message
		if httpErr.StatusCode == http.StatusInternalServerError && !cfg.IsProduction() {
			message = err.Error()
		}
		if httpErr.StatusCode >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		_ = c.JSON(httpErr.StatusCode, apperrors.Envelope{
			Success: false,
			Error:   message,
		})
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
