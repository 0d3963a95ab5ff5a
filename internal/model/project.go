package model

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a named body of work to which users and time logs can
// be associated. An empty AssignedUserIDs set means any user may log time
// against the project.
type Project struct {
	ID              string    `json:"id" gorm:"size:64;primaryKey"`
	Name            string    `json:"name" gorm:"size:100;not null"`
	Description     string    `json:"description,omitempty" gorm:"size:500"`
	AssignedUserIDs []string  `json:"assigned_user_ids" gorm:"serializer:json"`
	IsActive        bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate sets the composed ID before inserting the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID("prj")
	}
	return nil
}

// AllowsUser reports whether the given user may attribute time logs to the
// project. Projects with no assignees are open to everyone.
func (p *Project) AllowsUser(userID string) bool {
	if len(p.AssignedUserIDs) == 0 {
		return true
	}
	for _, id := range p.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
