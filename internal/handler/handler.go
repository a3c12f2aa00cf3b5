package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"workoutapi/internal/errors"
)

// ActorContextKey is where the session middleware stores the authenticated user id.
const ActorContextKey = "user"

// MessageResponse is the plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondError maps a service error to its HTTP form. Internal errors are
// logged with their detail, which never reaches the client.
func respondError(c echo.Context, logger zerolog.Logger, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}

// actor returns the user id placed in the context by the session middleware.
func actor(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ActorContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid session token",
			Code:  "UNAUTHORIZED",
		})
	}
	return id, nil
}
