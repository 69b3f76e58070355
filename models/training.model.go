package models

import (
	"time"

	"gorm.io/gorm"
)

// Training lifecycle statuses.
const (
	TrainingDraft           = "DRAFT"
	TrainingPendingApproval = "PENDING_APPROVAL"
	TrainingApproved        = "APPROVED"
	TrainingRejected        = "REJECTED"
	TrainingPublished       = "PUBLISHED"
	TrainingOngoing         = "ONGOING"
	TrainingCompleted       = "COMPLETED"
	TrainingCancelled       = "CANCELLED"
)

// Training delivery types.
const (
	TrainingTypeOnline    = "ONLINE"
	TrainingTypeClassroom = "CLASSROOM"
	TrainingTypeWorkshop  = "WORKSHOP"
	TrainingTypeWebinar   = "WEBINAR"
)

// Training represents a training program
type Training struct {
	gorm.Model
	Title           string `json:"title" gorm:"index;not null"`
	Description     string `json:"description"`
	Category        string `json:"category" gorm:"index"`
	Type            string `json:"type" gorm:"type:varchar(20);default:'ONLINE'"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	InstructorID    *uint  `json:"instructor_id"`
	MaxParticipants int    `json:"max_participants" gorm:"default:0"`
	EnrolledCount   int    `json:"enrolled_count" gorm:"default:0"`
	IsMandatory     bool   `json:"is_mandatory" gorm:"default:false"`
	Status          string `json:"status" gorm:"type:varchar(20);default:'DRAFT';index"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedByID     uint       `json:"created_by_id" gorm:"index"`
	ApprovedByID    *uint      `json:"approved_by_id"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason string     `json:"rejection_reason"`

	IsDeleted bool `json:"-" gorm:"default:false"`
}

// TrainingPrerequisite declares that completing RequiredID is a precondition
// for enrolling in TrainingID.
type TrainingPrerequisite struct {
	gorm.Model
	TrainingID uint `json:"training_id" gorm:"index:idx_training_prereq,unique;not null"`
	RequiredID uint `json:"required_id" gorm:"index:idx_training_prereq,unique;not null"`
}
