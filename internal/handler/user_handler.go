package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"workoutapi/internal/errors"
	"workoutapi/internal/service"
)

// UserHandler handles account endpoints under /user.
type UserHandler struct {
	authService       service.AuthService
	logger            zerolog.Logger
	verifyRedirectURL string
}

// NewUserHandler creates a new user handler. When verifyRedirectURL is set a
// successful verification redirects there instead of answering JSON.
func NewUserHandler(authService service.AuthService, logger zerolog.Logger, verifyRedirectURL string) *UserHandler {
	return &UserHandler{
		authService:       authService,
		logger:            logger,
		verifyRedirectURL: verifyRedirectURL,
	}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse represents a signup response.
type SignupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"userId"`
	Token    string    `json:"token"`
}

// UpdatePasswordRequest represents a password change.
type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

// Signup godoc
// @Summary Create an account and send the verification email
// @Tags user
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "all fields are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Message: "User created successfully",
		Token:   result.Token,
	})
}

// Verify godoc
// @Summary Confirm an email address
// @Tags user
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} MessageResponse
// @Success 302 "Redirect to the configured page"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/verify [get]
func (h *UserHandler) Verify(c echo.Context) error {
	if err := h.authService.Verify(c.Request().Context(), c.QueryParam("token")); err != nil {
		return respondError(c, h.logger, err)
	}

	if h.verifyRedirectURL != "" {
		return c.Redirect(http.StatusFound, h.verifyRedirectURL)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Email successfully verified!"})
}

// Login godoc
// @Summary Login with username, email and password
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	result, err := h.authService.Login(c.Request().Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Username: result.Profile.Username,
		Email:    result.Profile.Email,
		UserID:   result.Profile.UserID,
		Token:    result.Token,
	})
}

// Profile godoc
// @Summary Get a user profile
// @Tags user
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile/{userId} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "user not found",
			Code:  "NOT_FOUND",
		})
	}

	user, err := h.authService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdatePassword godoc
// @Summary Change the account password
// @Tags user
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body UpdatePasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/update/{userId} [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "password is required",
			Code:  "VALIDATION_ERROR",
		})
	}

	// An id that cannot exist updates nothing.
	if id, err := uuid.Parse(c.Param("userId")); err == nil {
		if err := h.authService.UpdatePassword(c.Request().Context(), id, req.Password); err != nil {
			return respondError(c, h.logger, err)
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// DeleteAccount godoc
// @Summary Delete the account
// @Tags user
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/delete/{userId} [delete]
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	if id, err := uuid.Parse(c.Param("userId")); err == nil {
		if err := h.authService.DeleteAccount(c.Request().Context(), id); err != nil {
			return respondError(c, h.logger, err)
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted successfully"})
}
