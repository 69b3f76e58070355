package models

import (
	"time"

	"gorm.io/gorm"
)

// TrainingCompletion asserts an enrollment met the attendance threshold.
// One per enrollment, immutable once created except for certificate issuance.
// UserID and TrainingID are denormalized for badge and prerequisite lookups.
type TrainingCompletion struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	UserID       uint `json:"user_id" gorm:"index;not null"`
	TrainingID   uint `json:"training_id" gorm:"index;not null"`

	CompletedAt          time.Time `json:"completed_at" gorm:"index;not null"`
	AttendancePercentage float64   `json:"attendance_percentage"`
	LearningHours        float64   `json:"learning_hours"`

	CertificateIssued bool   `json:"certificate_issued" gorm:"default:false"`
	CertificateURL    string `json:"certificate_url"`
	CredentialID      string `json:"credential_id"`
}
