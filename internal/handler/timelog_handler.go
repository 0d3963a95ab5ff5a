package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/repository"
	"timetrack/internal/service"
)

// TimeLogHandler handles time log endpoints, both owner-scoped and admin.
type TimeLogHandler struct {
	timeLogService service.TimeLogService
}

// NewTimeLogHandler creates a new time log handler.
func NewTimeLogHandler(timeLogService service.TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{timeLogService: timeLogService}
}

// CreateTimeLogRequest represents a time log creation request.
type CreateTimeLogRequest struct {
	ProjectID   string          `json:"project_id"`
	Date        string          `json:"date" validate:"required"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description" validate:"max=500"`
}

// UpdateTimeLogRequest represents a partial time log update; omitted fields
// are left unchanged.
type UpdateTimeLogRequest struct {
	ProjectID   *string          `json:"project_id"`
	Date        *string          `json:"date"`
	Hours       *decimal.Decimal `json:"hours"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
}

// timeLogFilters reads the shared query filters: all present filters are
// ANDed, absent ones are no-ops, limit is a hard cap per call.
func timeLogFilters(c echo.Context) (repository.TimeLogFilters, error) {
	filters := repository.TimeLogFilters{
		UserID:    c.QueryParam("user_id"),
		ProjectID: c.QueryParam("project_id"),
	}
	start, err := parseDateParam(c, "start_date")
	if err != nil {
		return filters, err
	}
	end, err := parseDateParam(c, "end_date")
	if err != nil {
		return filters, err
	}
	filters.StartDate = start
	filters.EndDate = end
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filters, apperrors.NewValidationError(map[string]string{"limit": "must be a non-negative integer"})
		}
		filters.Limit = limit
	}
	return filters, nil
}

// Create godoc
// @Summary Log hours for a date
// @Tags time-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTimeLogRequest true "Time log fields"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Router /time-logs [post]
func (h *TimeLogHandler) Create(c echo.Context) error {
	var req CreateTimeLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError(map[string]string{"date": "must be a date in YYYY-MM-DD form"})
	}

	log, err := h.timeLogService.Create(c.Request().Context(), auth.ClaimsFrom(c), service.TimeLogInput{
		ProjectID:   req.ProjectID,
		Date:        date,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, log)
}

// List godoc
// @Summary List the caller's time logs
// @Tags time-logs
// @Produce json
// @Security BearerAuth
// @Param project_id query string false "Project filter"
// @Param start_date query string false "Start date YYYY-MM-DD"
// @Param end_date query string false "End date YYYY-MM-DD"
// @Param limit query int false "Hard cap on returned rows"
// @Success 200 {object} errors.Envelope
// @Router /time-logs [get]
func (h *TimeLogHandler) List(c echo.Context) error {
	filters, err := timeLogFilters(c)
	if err != nil {
		return err
	}
	logs, err := h.timeLogService.List(c.Request().Context(), auth.ClaimsFrom(c), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, logs)
}

// Get godoc
// @Summary Get one time log by ID
// @Tags time-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Time log ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /time-logs/{id} [get]
func (h *TimeLogHandler) Get(c echo.Context) error {
	log, err := h.timeLogService.Get(c.Request().Context(), auth.ClaimsFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, log)
}

// Update godoc
// @Summary Update a time log
// @Tags time-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Time log ID"
// @Param request body UpdateTimeLogRequest true "Fields to change"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Router /time-logs/{id} [put]
func (h *TimeLogHandler) Update(c echo.Context) error {
	var req UpdateTimeLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	update := service.TimeLogUpdate{
		ProjectID:   req.ProjectID,
		Hours:       req.Hours,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return apperrors.NewValidationError(map[string]string{"date": "must be a date in YYYY-MM-DD form"})
		}
		update.Date = &date
	}

	log, err := h.timeLogService.Update(c.Request().Context(), auth.ClaimsFrom(c), c.Param("id"), update)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, log)
}

// Delete godoc
// @Summary Delete a time log
// @Tags time-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Time log ID"
// @Success 200 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /time-logs/{id} [delete]
func (h *TimeLogHandler) Delete(c echo.Context) error {
	if err := h.timeLogService.Delete(c.Request().Context(), auth.ClaimsFrom(c), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "time log deleted")
}

// TotalHours godoc
// @Summary Sum the caller's hours over a filtered range
// @Tags time-logs
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date YYYY-MM-DD"
// @Param end_date query string false "End date YYYY-MM-DD"
// @Param project_id query string false "Project filter"
// @Success 200 {object} errors.Envelope
// @Router /time-logs/total-hours [get]
func (h *TimeLogHandler) TotalHours(c echo.Context) error {
	filters, err := timeLogFilters(c)
	if err != nil {
		return err
	}
	total, err := h.timeLogService.TotalHours(c.Request().Context(), auth.ClaimsFrom(c), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{"total_hours": total})
}

// DateRange godoc
// @Summary Per-day totals of the caller's logs between two dates
// @Tags time-logs
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Start date YYYY-MM-DD"
// @Param end_date query string true "End date YYYY-MM-DD"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /time-logs/date-range [get]
func (h *TimeLogHandler) DateRange(c echo.Context) error {
	start, err := parseDateParam(c, "start_date")
	if err != nil {
		return err
	}
	end, err := parseDateParam(c, "end_date")
	if err != nil {
		return err
	}
	if start == nil || end == nil {
		return apperrors.NewValidationError(map[string]string{
			"start_date": "start_date and end_date are required",
		})
	}

	days, err := h.timeLogService.DateRange(c.Request().Context(), auth.ClaimsFrom(c), *start, *end)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, days)
}

// AdminList godoc
// @Summary List all users' time logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "User filter"
// @Param project_id query string false "Project filter"
// @Param start_date query string false "Start date YYYY-MM-DD"
// @Param end_date query string false "End date YYYY-MM-DD"
// @Param limit query int false "Hard cap on returned rows"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /admin/time-logs [get]
func (h *TimeLogHandler) AdminList(c echo.Context) error {
	filters, err := timeLogFilters(c)
	if err != nil {
		return err
	}
	logs, err := h.timeLogService.AdminList(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, logs)
}

// AdminSummary godoc
// @Summary Aggregate hours per user across all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date YYYY-MM-DD"
// @Param end_date query string false "End date YYYY-MM-DD"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Router /admin/time-logs/summary [get]
func (h *TimeLogHandler) AdminSummary(c echo.Context) error {
	filters, err := timeLogFilters(c)
	if err != nil {
		return err
	}
	summary, err := h.timeLogService.AdminSummary(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, summary)
}
