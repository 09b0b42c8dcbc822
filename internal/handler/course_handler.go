package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ricogpa/ricogpa-backend/internal/middleware"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
	"github.com/ricogpa/ricogpa-backend/internal/response"
	"github.com/ricogpa/ricogpa-backend/internal/service"
	"github.com/ricogpa/ricogpa-backend/internal/validator"
)

// CourseHandler handles the caller's course list.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// List godoc
// GET /api/v1/gpa/courses
func (h *CourseHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courses, err := h.courseService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// Create godoc
// POST /api/v1/gpa/courses
func (h *CourseHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, course)
}

// Update godoc
// PUT /api/v1/gpa/courses/:id
// Applies the fields present in the body. An empty grade turns the course back into a planned one.
func (h *CourseHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, ok := courseID(c)
	if !ok {
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), claims.UserID, id, req)
	if err != nil {
		failCourse(c, err)
		return
	}

	response.Success(c, http.StatusOK, course)
}

// Delete godoc
// DELETE /api/v1/gpa/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, ok := courseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		failCourse(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func courseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func failCourse(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCourseNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
		return
	}
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
