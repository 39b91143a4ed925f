package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/service"
)

// AdminHandler serves the moderation dashboard endpoints. The router mounts
// these behind the admin middleware, which verifies the role against the
// database on every request.
type AdminHandler struct {
	projects service.ProjectService
	feedback service.FeedbackService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(projects service.ProjectService, feedback service.FeedbackService) *AdminHandler {
	return &AdminHandler{projects: projects, feedback: feedback}
}

// SetStatusRequest carries the target moderation status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListProjects godoc
// @Summary List projects for the moderation dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter, default pending"
// @Param category query string false "Category filter"
// @Param sort query string false "Sort order: likes or empty for newest first"
// @Success 200 {array} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/projects [get]
func (h *AdminHandler) ListProjects(c echo.Context) error {
	projects, err := h.projects.ListForAdmin(c.Request().Context(), service.ListOptions{
		Status:   model.ProjectStatus(c.QueryParam("status")),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, projects)
}

// SetStatus godoc
// @Summary Approve, reject or reset a project
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body SetStatusRequest true "Target status"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/projects/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	actor, ok := ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	var req SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projects.SetStatus(c.Request().Context(), id, model.ProjectStatus(req.Status), actor)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, project)
}

// ToggleFeature godoc
// @Summary Toggle the featured flag on a project
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/projects/{id}/feature [put]
func (h *AdminHandler) ToggleFeature(c echo.Context) error {
	actor, ok := ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.ToggleFeature(c.Request().Context(), id, actor)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, project)
}

// ListFeedback godoc
// @Summary List contact-form feedback
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Feedback
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/feedback [get]
func (h *AdminHandler) ListFeedback(c echo.Context) error {
	actor, ok := ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	feedbacks, err := h.feedback.List(c.Request().Context(), actor)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, feedbacks)
}
