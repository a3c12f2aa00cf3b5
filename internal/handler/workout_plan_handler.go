package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"workoutapi/internal/model"
	"workoutapi/internal/service"
)

// WorkoutPlanHandler handles weekly plan endpoints.
type WorkoutPlanHandler struct {
	planService service.WorkoutPlanService
	logger      zerolog.Logger
}

// NewWorkoutPlanHandler creates a new workout plan handler.
func NewWorkoutPlanHandler(planService service.WorkoutPlanService, logger zerolog.Logger) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{planService: planService, logger: logger}
}

// WorkoutPlanRequest represents a new plan entry.
type WorkoutPlanRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Day    string `json:"day"`
}

// UpdateWorkoutPlanRequest holds the fields to change.
type UpdateWorkoutPlanRequest struct {
	Title *string `json:"title"`
	Day   *string `json:"day"`
}

// UpdateWorkoutPlanResponse represents an updated plan.
type UpdateWorkoutPlanResponse struct {
	Message        string             `json:"message"`
	UpdatedWorkout *model.WorkoutPlan `json:"updatedWorkout"`
}

// List godoc
// @Summary List workout plans
// @Tags workout-plan
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User ID, defaults to the caller"
// @Success 200 {array} model.WorkoutPlan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gym/workout-plan [get]
func (h *WorkoutPlanHandler) List(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	plans, err := h.planService.List(c.Request().Context(), actorID, c.QueryParam("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, plans)
}

// Create godoc
// @Summary Add a workout plan entry
// @Tags workout-plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WorkoutPlanRequest true "Plan entry"
// @Success 201 {object} model.WorkoutPlan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gym/workout-plan [post]
func (h *WorkoutPlanHandler) Create(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	var req WorkoutPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	plan, err := h.planService.Create(c.Request().Context(), actorID, service.WorkoutPlanInput{
		UserID: req.UserID,
		Title:  req.Title,
		Day:    req.Day,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// Get godoc
// @Summary Get a workout plan entry
// @Tags workout-plan
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} model.WorkoutPlan
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/workout-plan/{id} [get]
func (h *WorkoutPlanHandler) Get(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	plan, err := h.planService.Get(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Update godoc
// @Summary Edit a workout plan entry
// @Tags workout-plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body UpdateWorkoutPlanRequest true "Fields to change"
// @Success 200 {object} UpdateWorkoutPlanResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /gym/workout-plan/{id} [put]
func (h *WorkoutPlanHandler) Update(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	var req UpdateWorkoutPlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	updated, err := h.planService.Update(c.Request().Context(), actorID, c.Param("id"), service.WorkoutPlanUpdate{
		Title: req.Title,
		Day:   req.Day,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, UpdateWorkoutPlanResponse{
		Message:        "Workout plan updated successfully",
		UpdatedWorkout: updated,
	})
}

// Delete godoc
// @Summary Delete a workout plan entry
// @Tags workout-plan
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /gym/workout-plan/{id} [delete]
func (h *WorkoutPlanHandler) Delete(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.planService.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Workout deleted successfully"})
}
