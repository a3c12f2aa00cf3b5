package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"workoutapi/internal/service"
)

// PerformanceHandler handles progress tracking endpoints.
type PerformanceHandler struct {
	performanceService service.PerformanceService
	logger             zerolog.Logger
}

// NewPerformanceHandler creates a new performance handler.
func NewPerformanceHandler(performanceService service.PerformanceService, logger zerolog.Logger) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService, logger: logger}
}

// PerformanceRequest represents a performance record.
type PerformanceRequest struct {
	UserID       string          `json:"userId"`
	Date         int64           `json:"date"`
	Weight       decimal.Decimal `json:"weight" swaggertype:"number"`
	ExerciseName string          `json:"exerciseName"`
	Load         decimal.Decimal `json:"load" swaggertype:"number"`
	Reps         int             `json:"reps"`
}

// ListByUser godoc
// @Summary List a user's performance records
// @Tags performance
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Performance
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gym/performance/{userId} [get]
func (h *PerformanceHandler) ListByUser(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	records, err := h.performanceService.ListByUser(c.Request().Context(), actorID, c.Param("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, records)
}

// Create godoc
// @Summary Save a performance record
// @Tags performance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PerformanceRequest true "Performance record"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /gym/performance [post]
func (h *PerformanceHandler) Create(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	var req PerformanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	_, err = h.performanceService.Create(c.Request().Context(), actorID, service.PerformanceInput{
		UserID:       req.UserID,
		Date:         req.Date,
		Weight:       req.Weight,
		ExerciseName: req.ExerciseName,
		Load:         req.Load,
		Reps:         req.Reps,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Performance saved successfully"})
}

// Delete godoc
// @Summary Delete a performance record
// @Tags performance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /gym/performance/{id} [delete]
func (h *PerformanceHandler) Delete(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return err
	}

	if err := h.performanceService.Delete(c.Request().Context(), actorID, c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Performance deleted successfully"})
}
