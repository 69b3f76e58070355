package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	EnrollmentAssigned   = "ASSIGNED"
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
	EnrollmentCancelled  = "CANCELLED"
)

// Enrollment ties a user to a training. At most one non-cancelled row exists
// per (user, training) pair; rows are cancelled, never deleted.
type Enrollment struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	TrainingID uint   `json:"training_id" gorm:"index;not null"`
	Status     string `json:"status" gorm:"type:varchar(20);default:'ENROLLED';index"`

	// AssignedByID is nil for self-enrollment.
	AssignedByID *uint      `json:"assigned_by_id"`
	AssignedAt   *time.Time `json:"assigned_at"`

	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Training Training `json:"training,omitempty" gorm:"foreignKey:TrainingID"`
}

// Active reports whether the enrollment still counts toward capacity and
// the one-per-pair invariant.
func (e *Enrollment) Active() bool {
	return e.Status != EnrollmentCancelled
}
