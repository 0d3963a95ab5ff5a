package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
	"timetrack/internal/service"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents an admin user creation request.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin super_admin"`
}

// UpdateUserRequest represents a partial user update; omitted fields are
// left unchanged.
type UpdateUserRequest struct {
	Email      *string   `json:"email"`
	FirstName  *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string   `json:"last_name" validate:"omitempty,max=100"`
	Role       *string   `json:"role" validate:"omitempty,oneof=user admin super_admin"`
	IsActive   *bool     `json:"is_active"`
	ProjectIDs *[]string `json:"project_ids"`
}

// List godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param is_active query bool false "Activation filter"
// @Param limit query int false "Hard cap on returned rows"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filters := repository.UserFilters{
		Email: c.QueryParam("email"),
		Role:  model.Role(c.QueryParam("role")),
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

	users, err := h.userService.List(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get one user by ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Create godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User fields"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Router /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if fields := credentialErrors(req.Email, req.Password); fields != nil {
		return apperrors.NewValidationError(fields)
	}

	user, err := h.userService.Create(c.Request().Context(), auth.ClaimsFrom(c), service.UserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Email != nil && !auth.ValidateEmail(*req.Email) {
		return apperrors.NewValidationError(map[string]string{"email": "must be a valid email address"})
	}

	update := service.UserUpdate{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		IsActive:   req.IsActive,
		ProjectIDs: req.ProjectIDs,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.userService.Update(c.Request().Context(), auth.ClaimsFrom(c), c.Param("id"), update)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "user deleted")
}

// ToggleStatus godoc
// @Summary Flip a user's activation flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /admin/users/{id}/toggle-status [patch]
func (h *UserHandler) ToggleStatus(c echo.Context) error {
	user, err := h.userService.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}
