package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
)

// respond writes a success envelope.
func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, apperrors.Envelope{Success: true, Data: data})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, apperrors.Envelope{Success: true, Message: message})
}

// bindAndValidate binds the request body and runs struct validation,
// translating validator failures into itemized field errors.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = tagMessage(fe)
			}
			return apperrors.NewValidationError(fields)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// parseDate parses a calendar date in 2006-01-02 form.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return model.TruncateDate(t), nil
}

// parseDateParam reads an optional date query parameter, reporting a field
// error on malformed input.
func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{name: "must be a date in YYYY-MM-DD form"})
	}
	return &t, nil
}
