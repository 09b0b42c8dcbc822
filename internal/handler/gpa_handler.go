package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ricogpa/ricogpa-backend/internal/middleware"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
	"github.com/ricogpa/ricogpa-backend/internal/response"
	"github.com/ricogpa/ricogpa-backend/internal/service"
	"github.com/ricogpa/ricogpa-backend/internal/validator"
)

// GPAHandler serves summaries and forecasts.
type GPAHandler struct {
	authService *service.AuthService
	gpaService  *service.GPAService
}

// NewGPAHandler creates a new GPAHandler.
func NewGPAHandler(authService *service.AuthService, gpaService *service.GPAService) *GPAHandler {
	return &GPAHandler{authService: authService, gpaService: gpaService}
}

// Me godoc
// GET /api/v1/gpa/me
// Returns the caller's profile with cumulative and per-year GPA.
func (h *GPAHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	ctx := c.Request.Context()

	user, err := h.authService.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	summary, err := h.gpaService.Summary(ctx, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.GPAOverview{User: user.Profile(), Summary: summary})
}

// Forecast godoc
// POST /api/v1/gpa/forecast
func (h *GPAHandler) Forecast(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.ForecastRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.gpaService.Forecast(c.Request.Context(), claims.UserID, *req.TargetGPA, *req.RemainingCredits)
	if err != nil {
		if errors.Is(err, service.ErrInvalidForecast) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}
