package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"goaltracker/internal/auth"
	"goaltracker/internal/config"
	"goaltracker/internal/errors"
	"goaltracker/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	goalHandler *handler.GoalHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// Cross-origin requests are allowed from the configured client only.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes. All verification goes through jwtService so every
	// failure mode (missing header, bad signature, wrong algorithm, expiry)
	// produces the same 401.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.Verify(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "invalid or missing token",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	// Goal routes
	secured.GET("/goals", goalHandler.ListGoals)
	secured.GET("/goal/:id", goalHandler.GetGoal)
	secured.POST("/goal", goalHandler.CreateGoal)
	secured.PUT("/goal/:id", goalHandler.UpdateGoal)
	secured.DELETE("/goal/:id", goalHandler.DeleteGoal)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
