package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"workoutapi/internal/model"
	"workoutapi/internal/service"
)

// ExerciseHandler handles logged exercise endpoints.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	logger          zerolog.Logger
}

// NewExerciseHandler creates a new exercise handler.
func NewExerciseHandler(exerciseService service.ExerciseService, logger zerolog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, logger: logger}
}

// CreateExerciseRequest represents a new exercise.
type CreateExerciseRequest struct {
	Title  string          `json:"title"`
	Load   decimal.Decimal `json:"load" swaggertype:"number"`
	Reps   int             `json:"reps"`
	UserID string          `json:"userId"`
}

// UpdateExerciseRequest holds the fields to change.
type UpdateExerciseRequest struct {
	Title *string          `json:"title"`
	Load  *decimal.Decimal `json:"load" swaggertype:"number"`
	Reps  *int             `json:"reps"`
}

// UpdateExerciseResponse represents an updated exercise.
type UpdateExerciseResponse struct {
	Message    string          `json:"message"`
	UpdatedGym *model.Exercise `json:"updatedGym"`
}

// Create godoc
// @Summary Log an exercise
// @Tags gym
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExerciseRequest true "Exercise"
// @Success 201 {object} model.Exercise
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gym [post]
func (h *ExerciseHandler) Create(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	var req CreateExerciseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	exercise, err := h.exerciseService.Create(c.Request().Context(), actorID, service.ExerciseInput{
		Title:  req.Title,
		Load:   req.Load,
		Reps:   req.Reps,
		UserID: req.UserID,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, exercise)
}

// ListByUser godoc
// @Summary List a user's exercises
// @Tags gym
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Exercise
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/gyms/{userId} [get]
func (h *ExerciseHandler) ListByUser(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	exercises, err := h.exerciseService.ListByUser(c.Request().Context(), actorID, c.Param("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, exercises)
}

// Get godoc
// @Summary Get an exercise
// @Tags gym
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} model.Exercise
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/exercise/{id} [get]
func (h *ExerciseHandler) Get(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	exercise, err := h.exerciseService.Get(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, exercise)
}

// Update godoc
// @Summary Update an exercise
// @Tags gym
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param request body UpdateExerciseRequest true "Fields to change"
// @Success 200 {object} UpdateExerciseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/exercise/{id} [put]
func (h *ExerciseHandler) Update(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	var req UpdateExerciseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	updated, err := h.exerciseService.Update(c.Request().Context(), actorID, c.Param("id"), service.ExerciseUpdate{
		Title: req.Title,
		Load:  req.Load,
		Reps:  req.Reps,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, UpdateExerciseResponse{
		Message:    "Workout exercise updated successfully",
		UpdatedGym: updated,
	})
}

// Delete godoc
// @Summary Delete an exercise
// @Tags gym
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/delete/{id} [delete]
func (h *ExerciseHandler) Delete(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.exerciseService.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Gym exercise deleted successfully"})
}
