package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"workoutapi/internal/errors"
	"workoutapi/internal/handler"
	"workoutapi/internal/logging"
	"workoutapi/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	User        *handler.UserHandler
	Exercise    *handler.ExerciseHandler
	WorkoutPlan *handler.WorkoutPlanHandler
	Performance *handler.PerformanceHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, logger zerolog.Logger, authService service.AuthService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the Workout API")
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public account routes
	user := e.Group("/user")
	user.POST("/signup", h.User.Signup)
	user.GET("/verify", h.User.Verify)
	user.POST("/login", h.User.Login)
	user.GET("/profile/:userId", h.User.Profile)
	user.PUT("/update/:userId", h.User.UpdatePassword)
	user.DELETE("/delete/:userId", h.User.DeleteAccount)

	// Secured routes (require a session token)
	gym := e.Group("/gym", SessionMiddleware(authService))

	gym.POST("", h.Exercise.Create)
	gym.GET("/gyms/:userId", h.Exercise.ListByUser)
	gym.GET("/exercise/:id", h.Exercise.Get)
	gym.PUT("/exercise/:id", h.Exercise.Update)
	gym.DELETE("/delete/:id", h.Exercise.Delete)

	gym.GET("/workout-plan", h.WorkoutPlan.List)
	gym.POST("/workout-plan", h.WorkoutPlan.Create)
	gym.GET("/workout-plan/:id", h.WorkoutPlan.Get)
	gym.PUT("/workout-plan/:id", h.WorkoutPlan.Update)
	gym.DELETE("/workout-plan/:id", h.WorkoutPlan.Delete)

	gym.GET("/performance/:userId", h.Performance.ListByUser)
	gym.POST("/performance", h.Performance.Create)
	gym.DELETE("/performance/:id", h.Performance.Delete)
}

// SessionMiddleware authenticates bearer session tokens and stores the user id
// under handler.ActorContextKey. Verification tokens and revoked sessions are
// rejected.
func SessionMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ActorContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.AuthenticateSession(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid session token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
