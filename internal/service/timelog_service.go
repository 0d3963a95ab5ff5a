package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"timetrack/internal/auth"
	apperrors "timetrack/internal/errors"
	"timetrack/internal/model"
	"timetrack/internal/repository"
)

var maxDailyHours = decimal.NewFromInt(24)

// TimeLogInput carries the fields for creating a time log.
type TimeLogInput struct {
	ProjectID   string
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// TimeLogUpdate carries the mutable fields of a time log; nil means
// "leave unchanged". The owning user is immutable.
type TimeLogUpdate struct {
	ProjectID   *string
	Date        *time.Time
	Hours       *decimal.Decimal
	Description *string
}

// TimeLogWithUser is a time log enriched with its owner's display fields.
// Orphaned logs keep their rows and render a placeholder owner.
type TimeLogWithUser struct {
	model.TimeLog
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email,omitempty"`
}

// DayTotal aggregates one calendar day of the caller's logs.
type DayTotal struct {
	Date       string          `json:"date"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Count      int             `json:"count"`
}

// UserSummary aggregates one user's logs inside an admin summary.
type UserSummary struct {
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name"`
	TotalHours decimal.Decimal `json:"total_hours"`
	LogCount   int             `json:"log_count"`
}

// Summary is the admin-wide aggregate view.
type Summary struct {
	TotalHours decimal.Decimal `json:"total_hours"`
	LogCount   int             `json:"log_count"`
	Users      []UserSummary   `json:"users"`
}

// TimeLogService owns the time log business rules: duplicate prevention,
// project reference checks and the ownership scope gate.
type TimeLogService interface {
	Create(ctx context.Context, claims *auth.Claims, input TimeLogInput) (*model.TimeLog, error)
	Get(ctx context.Context, claims *auth.Claims, id string) (*model.TimeLog, error)
	List(ctx context.Context, claims *auth.Claims, filters repository.TimeLogFilters) ([]model.TimeLog, error)
	Update(ctx context.Context, claims *auth.Claims, id string, update TimeLogUpdate) (*model.TimeLog, error)
	Delete(ctx context.Context, claims *auth.Claims, id string) error
	TotalHours(ctx context.Context, claims *auth.Claims, filters repository.TimeLogFilters) (decimal.Decimal, error)
	DateRange(ctx context.Context, claims *auth.Claims, start, end time.Time) ([]DayTotal, error)
	AdminList(ctx context.Context, filters repository.TimeLogFilters) ([]TimeLogWithUser, error)
	AdminSummary(ctx context.Context, filters repository.TimeLogFilters) (*Summary, error)
}

type timeLogService struct {
	timeLogRepo repository.TimeLogRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewTimeLogService creates a new time log service.
func NewTimeLogService(timeLogRepo repository.TimeLogRepository, userRepo repository.UserRepository, projectRepo repository.ProjectRepository) TimeLogService {
	return &timeLogService{
		timeLogRepo: timeLogRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
	}
}

func validateHours(hours decimal.Decimal) error {
	if hours.LessThanOrEqual(decimal.Zero) || hours.GreaterThan(maxDailyHours) {
		return apperrors.NewValidationError(map[string]string{
			"hours": "hours must be greater than 0 and at most 24",
		})
	}
	return nil
}

// checkProject verifies that the referenced project exists, is active and
// allows the user to log time against it.
func (s *timeLogService) checkProject(ctx context.Context, projectID, userID string) error {
	if projectID == "" {
		return nil
	}
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError(map[string]string{"project_id": "project does not exist"})
		}
		return fmt.Errorf("check project: %w", err)
	}
	if !project.IsActive {
		return apperrors.NewValidationError(map[string]string{"project_id": "project is not active"})
	}
	if !project.AllowsUser(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// Create inserts a log for the caller. At most one log may exist per
// (user, date, project) tuple; the check is a pre-read, not a unique index.
func (s *timeLogService) Create(ctx context.Context, claims *auth.Claims, input TimeLogInput) (*model.TimeLog, error) {
	if err := validateHours(input.Hours); err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, input.ProjectID, claims.UserID); err != nil {
		return nil, err
	}

	date := model.TruncateDate(input.Date)
	if _, err := s.timeLogRepo.FindDuplicate(ctx, claims.UserID, date, input.ProjectID); err == nil {
		return nil, apperrors.ErrDuplicateTimeLog
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}

	log := &model.TimeLog{
		UserID:      claims.UserID,
		ProjectID:   input.ProjectID,
		Date:        date,
		Hours:       input.Hours,
		Description: input.Description,
	}
	if err := s.timeLogRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create time log: %w", err)
	}
	return log, nil
}

// fetchScoped loads a log and applies the ownership gate: the caller must
// own the record unless their role carries view_all_logs. A foreign record
// reads as absent rather than forbidden, so existence is not leaked.
func (s *timeLogService) fetchScoped(ctx context.Context, claims *auth.Claims, id string) (*model.TimeLog, error) {
	log, err := s.timeLogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.UserID != claims.UserID && !auth.HasPermission(claims.Role, auth.PermViewAllLogs) {
		return nil, apperrors.ErrNotFound
	}
	return log, nil
}

func (s *timeLogService) Get(ctx context.Context, claims *auth.Claims, id string) (*model.TimeLog, error) {
	return s.fetchScoped(ctx, claims, id)
}

// List returns the caller's own logs; the user filter is always pinned to
// the caller regardless of what was requested.
func (s *timeLogService) List(ctx context.Context, claims *auth.Claims, filters repository.TimeLogFilters) ([]model.TimeLog, error) {
	filters.UserID = claims.UserID
	return s.timeLogRepo.FindByFilters(ctx, filters)
}

func (s *timeLogService) Update(ctx context.Context, claims *auth.Claims, id string, update TimeLogUpdate) (*model.TimeLog, error) {
	log, err := s.fetchScoped(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	projectID := log.ProjectID
	if update.ProjectID != nil {
		projectID = *update.ProjectID
	}
	date := log.Date
	if update.Date != nil {
		date = model.TruncateDate(*update.Date)
	}
	hours := log.Hours
	if update.Hours != nil {
		hours = *update.Hours
	}

	if err := validateHours(hours); err != nil {
		return nil, err
	}
	if projectID != log.ProjectID {
		if err := s.checkProject(ctx, projectID, log.UserID); err != nil {
			return nil, err
		}
	}
	if !date.Equal(log.Date) || projectID != log.ProjectID {
		if dup, err := s.timeLogRepo.FindDuplicate(ctx, log.UserID, date, projectID); err == nil && dup.ID != log.ID {
			return nil, apperrors.ErrDuplicateTimeLog
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
	}

	log.ProjectID = projectID
	log.Date = date
	log.Hours = hours
	if update.Description != nil {
		log.Description = *update.Description
	}
	if err := s.timeLogRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("update time log: %w", err)
	}
	return log, nil
}

func (s *timeLogService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	log, err := s.fetchScoped(ctx, claims, id)
	if err != nil {
		return err
	}
	return s.timeLogRepo.Delete(ctx, log.ID)
}

// TotalHours sums the caller's logged hours over the filtered range.
func (s *timeLogService) TotalHours(ctx context.Context, claims *auth.Claims, filters repository.TimeLogFilters) (decimal.Decimal, error) {
	filters.UserID = claims.UserID
	logs, err := s.timeLogRepo.FindByFilters(ctx, filters)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, log := range logs {
		total = total.Add(log.Hours)
	}
	return total, nil
}

// DateRange groups the caller's logs per calendar day, most recent first.
func (s *timeLogService) DateRange(ctx context.Context, claims *auth.Claims, start, end time.Time) ([]DayTotal, error) {
	logs, err := s.timeLogRepo.FindByFilters(ctx, repository.TimeLogFilters{
		UserID:    claims.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DayTotal)
	for _, log := range logs {
		day := log.Date.Format(model.DateLayout)
		entry, ok := byDay[day]
		if !ok {
			entry = &DayTotal{Date: day, TotalHours: decimal.Zero}
			byDay[day] = entry
		}
		entry.TotalHours = entry.TotalHours.Add(log.Hours)
		entry.Count++
	}

	days := make([]DayTotal, 0, len(byDay))
	for _, entry := range byDay {
		days = append(days, *entry)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days, nil
}

// resolveOwners maps the distinct owner IDs of logs to their users. IDs
// pointing at deleted users are simply absent from the result.
func (s *timeLogService) resolveOwners(ctx context.Context, logs []model.TimeLog) (map[string]model.User, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, log := range logs {
		if _, ok := seen[log.UserID]; !ok {
			seen[log.UserID] = struct{}{}
			ids = append(ids, log.UserID)
		}
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	byID := make(map[string]model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

// AdminList returns all users' logs enriched with owner names. Logs whose
// owner was deleted render "Unknown User".
func (s *timeLogService) AdminList(ctx context.Context, filters repository.TimeLogFilters) ([]TimeLogWithUser, error) {
	logs, err := s.timeLogRepo.FindByFilters(ctx, filters)
	if err != nil {
		return nil, err
	}
	owners, err := s.resolveOwners(ctx, logs)
	if err != nil {
		return nil, err
	}

	enriched := make([]TimeLogWithUser, 0, len(logs))
	for _, log := range logs {
		entry := TimeLogWithUser{TimeLog: log, UserName: "Unknown User"}
		if user, ok := owners[log.UserID]; ok {
			entry.UserName = user.FullName()
			entry.UserEmail = user.Email
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// AdminSummary aggregates per-user and overall totals across all users.
func (s *timeLogService) AdminSummary(ctx context.Context, filters repository.TimeLogFilters) (*Summary, error) {
	logs, err := s.timeLogRepo.FindByFilters(ctx, filters)
	if err != nil {
		return nil, err
	}
	owners, err := s.resolveOwners(ctx, logs)
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalHours: decimal.Zero}
	perUser := make(map[string]*UserSummary)
	for _, log := range logs {
		summary.TotalHours = summary.TotalHours.Add(log.Hours)
		summary.LogCount++

		entry, ok := perUser[log.UserID]
		if !ok {
			name := "Unknown User"
			if user, found := owners[log.UserID]; found {
				name = user.FullName()
			}
			entry = &UserSummary{UserID: log.UserID, UserName: name, TotalHours: decimal.Zero}
			perUser[log.UserID] = entry
		}
		entry.TotalHours = entry.TotalHours.Add(log.Hours)
		entry.LogCount++
	}

	for _, entry := range perUser {
		summary.Users = append(summary.Users, *entry)
	}
	sort.Slice(summary.Users, func(i, j int) bool {
		return summary.Users[i].TotalHours.GreaterThan(summary.Users[j].TotalHours)
	})
	return summary, nil
}
