package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"timetrack/internal/auth"
	"timetrack/internal/repository"
	"timetrack/internal/service"
)

// ExportHandler materializes query results into downloadable files.
type ExportHandler struct {
	exportService  service.ExportService
	timeLogService service.TimeLogService
	userService    service.UserService
	projectService service.ProjectService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(
	exportService service.ExportService,
	timeLogService service.TimeLogService,
	userService service.UserService,
	projectService service.ProjectService,
) *ExportHandler {
	return &ExportHandler{
		exportService:  exportService,
		timeLogService: timeLogService,
		userService:    userService,
		projectService: projectService,
	}
}

// ExportRequest represents an export request. Filters are read from the
// query string like the corresponding list endpoints.
type ExportRequest struct {
	Format     string `json:"format" validate:"required,oneof=csv excel"`
	TTLMinutes int    `json:"ttl_minutes" validate:"omitempty,min=1,max=1440"`
}

func (req *ExportRequest) ttl() time.Duration {
	return time.Duration(req.TTLMinutes) * time.Minute
}

// ExportTimeLogs godoc
// @Summary Export time logs to CSV or XLSX
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExportRequest true "Export options"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 503 {object} errors.Envelope
// @Router /exports/time-logs [post]
func (h *ExportHandler) ExportTimeLogs(c echo.Context) error {
	var req ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	filters, err := timeLogFilters(c)
	if err != nil {
		return err
	}

	// Non-privileged callers export only their own logs; view_all_logs widens
	// the scope to everyone's, with owner names resolved.
	claims := auth.ClaimsFrom(c)
	var rows [][]string
	if auth.HasPermission(claims.Role, auth.PermViewAllLogs) {
		logs, err := h.timeLogService.AdminList(c.Request().Context(), filters)
		if err != nil {
			return err
		}
		for _, log := range logs {
			rows = append(rows, timeLogRow(log))
		}
	} else {
		logs, err := h.timeLogService.List(c.Request().Context(), claims, filters)
		if err != nil {
			return err
		}
		for _, log := range logs {
			rows = append(rows, timeLogRow(service.TimeLogWithUser{
				TimeLog:  log,
				UserName: claims.FirstName + " " + claims.LastName,
			}))
		}
	}

	header := []string{"ID", "User", "Date", "Project ID", "Hours", "Description", "Created At"}
	result, err := h.exportService.Export(c.Request().Context(), req.Format, header, rows, "time_logs", req.ttl())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

func timeLogRow(log service.TimeLogWithUser) []string {
	return []string{
		log.ID,
		log.UserName,
		log.Date.Format("2006-01-02"),
		log.ProjectID,
		log.Hours.String(),
		log.Description,
		log.CreatedAt.Format(time.RFC3339),
	}
}

// ExportUsers godoc
// @Summary Export users to CSV or XLSX
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExportRequest true "Export options"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 503 {object} errors.Envelope
// @Router /exports/users [post]
func (h *ExportHandler) ExportUsers(c echo.Context) error {
	var req ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), repository.UserFilters{})
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		active := "no"
		if user.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			user.ID, user.Email, user.FirstName, user.LastName,
			string(user.Role), active, user.CreatedAt.Format(time.RFC3339),
		})
	}

	header := []string{"ID", "Email", "First Name", "Last Name", "Role", "Active", "Created At"}
	result, err := h.exportService.Export(c.Request().Context(), req.Format, header, rows, "users", req.ttl())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

// ExportProjects godoc
// @Summary Export projects to CSV or XLSX
// @Tags exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExportRequest true "Export options"
// @Success 200 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 503 {object} errors.Envelope
// @Router /exports/projects [post]
func (h *ExportHandler) ExportProjects(c echo.Context) error {
	var req ExportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	projects, err := h.projectService.List(c.Request().Context(), repository.ProjectFilters{})
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		active := "no"
		if project.IsActive {
			active = "yes"
		}
		rows = append(rows, []string{
			project.ID, project.Name, project.Description, active,
			project.CreatedAt.Format(time.RFC3339),
		})
	}

	header := []string{"ID", "Name", "Description", "Active", "Created At"}
	result, err := h.exportService.Export(c.Request().Context(), req.Format, header, rows, "projects", req.ttl())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

// Stats godoc
// @Summary Stored export object statistics
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Failure 503 {object} errors.Envelope
// @Router /exports/stats [get]
func (h *ExportHandler) Stats(c echo.Context) error {
	stats, err := h.exportService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

// Download godoc
// @Summary Download an export via its pre-signed link
// @Tags exports
// @Produce octet-stream
// @Param key path string true "Object key"
// @Param expires query string true "Link expiry (unix seconds)"
// @Param sig query string true "Link signature"
// @Success 200 {file} binary
// @Failure 404 {object} errors.Envelope
// @Router /exports/download/{key} [get]
func (h *ExportHandler) Download(c echo.Context) error {
	data, contentType, err := h.exportService.Fetch(
		c.Request().Context(),
		c.Param("key"),
		c.QueryParam("expires"),
		c.QueryParam("sig"),
	)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+c.Param("key")+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}
