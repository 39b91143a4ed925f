package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"innoreg/internal/errors"
	"innoreg/internal/model"
	"innoreg/internal/service"
)

// ProjectHandler serves the public gallery and authenticated project
// endpoints. One handler covers the general surface and the category
// convenience surfaces: when category is non-empty it is pinned server-side
// on every operation, regardless of client input.
type ProjectHandler struct {
	projects   service.ProjectService
	engagement service.EngagementService
	category   string
}

// NewProjectHandler creates the general project handler.
func NewProjectHandler(projects service.ProjectService, engagement service.EngagementService) *ProjectHandler {
	return &ProjectHandler{projects: projects, engagement: engagement}
}

// ForCategory returns a thin adapter over the same services with the
// category pinned (used for /robotics and /drones).
func (h *ProjectHandler) ForCategory(category string) *ProjectHandler {
	return &ProjectHandler{projects: h.projects, engagement: h.engagement, category: category}
}

// CreateProjectRequest represents a project submission.
type CreateProjectRequest struct {
	Name          string   `json:"name" validate:"required"`
	Category      string   `json:"category"`
	TeamMembers   []string `json:"teamMembers" validate:"required,min=1"`
	Description   string   `json:"description" validate:"required"`
	ProjectImages []string `json:"projectImages"`
	ContactEmail  string   `json:"contactEmail" validate:"required,email"`
	ContactNumber string   `json:"contactNumber" validate:"required"`
}

// LikeResponse wraps the updated project after a toggle.
type LikeResponse struct {
	Message string         `json:"message"`
	Project *model.Project `json:"project"`
}

// List godoc
// @Summary List approved projects
// @Tags projects
// @Produce json
// @Param category query string false "Category filter, All or empty for no filter"
// @Param featured query bool false "Featured filter"
// @Param sort query string false "Sort order: likes or empty for newest first"
// @Success 200 {array} model.Project
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	opts := service.ListOptions{
		Category: h.category,
		Sort:     c.QueryParam("sort"),
	}
	if h.category == "" {
		opts.Category = c.QueryParam("category")
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "featured must be a boolean",
				Code:  "INVALID_FEATURED",
			})
		}
		opts.Featured = &featured
	}

	projects, err := h.projects.ListPublic(c.Request().Context(), opts)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Get a single project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := parseProjectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.Get(c.Request().Context(), id, h.category)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, project)
}

// Create godoc
// @Summary Submit a new project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project submission"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, ok := ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required to submit a project",
			Code:  "UNAUTHENTICATED",
		})
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category := req.Category
	if h.category != "" {
		// Category surface: the pinned value wins over whatever the client sent.
		category = h.category
	}

	project, err := h.projects.Create(c.Request().Context(), actor.ID, service.CreateProjectInput{
		Name:          req.Name,
		Category:      category,
		TeamMembers:   req.TeamMembers,
		Description:   req.Description,
		ProjectImages: req.ProjectImages,
		ContactEmail:  req.ContactEmail,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, project)
}

// Delete godoc
// @Summary Delete a project (owner or admin)
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
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

	ctx := c.Request().Context()
	if h.category != "" {
		// 404 instead of deleting a project outside the pinned category.
		if _, err := h.projects.Get(ctx, id, h.category); err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}

	if err := h.projects.Delete(ctx, id, actor); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted successfully"})
}

// Like godoc
// @Summary Toggle a like on a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} LikeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id}/like [patch]
func (h *ProjectHandler) Like(c echo.Context) error {
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

	project, liked, err := h.engagement.ToggleLike(c.Request().Context(), id, actor.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	message := "project successfully unliked"
	if liked {
		message = "project successfully liked"
	}
	return c.JSON(http.StatusOK, LikeResponse{Message: message, Project: project})
}

func parseProjectID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid project ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
