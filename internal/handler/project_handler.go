package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/repository"
	"timetrack/internal/service"
)

// ProjectHandler handles project endpoints. These routes sit behind
// authentication but deliberately carry no role gate: projects are treated
// as semi-public reference data.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=100"`
	Description     string   `json:"description" validate:"max=500"`
	AssignedUserIDs []string `json:"assigned_user_ids"`
}

// UpdateProjectRequest represents a partial project update; omitted fields
// are left unchanged.
type UpdateProjectRequest struct {
	Name            *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string   `json:"description" validate:"omitempty,max=500"`
	AssignedUserIDs *[]string `json:"assigned_user_ids"`
	IsActive        *bool     `json:"is_active"`
}

// List godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param assigned_user_id query string false "Assignee filter"
// @Param is_active query bool false "Activation filter"
// @Param limit query int false "Hard cap on returned rows"
// @Success 200 {object} errors.Envelope
// @Router /admin/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	filters := repository.ProjectFilters{
		AssignedUserID: c.QueryParam("assigned_user_id"),
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError(map[string]string{"is_active": "must be true or false"})
		}
		filters.IsActive = &active
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return apperrors.NewValidationError(map[string]string{"limit": "must be a non-negative integer"})
		}
		filters.Limit = limit
	}

	projects, err := h.projectService.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, projects)
}

// Get godoc
// @Summary Get one project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project fields"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), service.ProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, project)
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req UpdateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), c.Param("id"), service.ProjectUpdate{
		Name:            req.Name,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "project deleted")
}
