package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format for calendar dates; time of day is not modeled.
const DateLayout = "2006-01-02"

// TimeLog represents a single dated entry of hours worked, optionally tied
// to a project. UserID is immutable after creation.
type TimeLog struct {
	ID          string          `json:"id" gorm:"size:64;primaryKey"`
	UserID      string          `json:"user_id" gorm:"size:64;not null;index"`
	ProjectID   string          `json:"project_id,omitempty" gorm:"size:64;index"`
	Date        time.Time       `json:"date" gorm:"type:date;not null;index"`
	Hours       decimal.Decimal `json:"hours" gorm:"type:decimal(4,2);not null"`
	Description string          `json:"description,omitempty" gorm:"size:500"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets the composed ID before inserting the record.
func (t *TimeLog) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID("tlg")
	}
	return nil
}

// TruncateDate drops the time-of-day component, keeping only the calendar
// date in UTC.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
