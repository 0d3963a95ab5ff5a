package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
)

// Filter structs hold optional criteria. All set fields are ANDed; zero
// values are no-ops, never "match none". Limit caps the result set; there
// is no offset pagination.

// UserFilters narrows user queries.
type UserFilters struct {
	Email    string
	Role     model.Role
	IsActive *bool
	Limit    int
}

// TimeLogFilters narrows time log queries.
type TimeLogFilters struct {
	UserID    string
	ProjectID string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// ProjectFilters narrows project queries.
type ProjectFilters struct {
	AssignedUserID string
	IsActive       *bool
	Limit          int
}

// wrapErr translates storage driver failures into the domain taxonomy:
// a missing row is ErrNotFound, anything else is an unreachable backend.
// No retries happen at this layer.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorageUnavailable, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters in caller-supplied values so a
// literal % or _ cannot widen the match.
func escapeLike(v string) string {
	return likeEscaper.Replace(v)
}
