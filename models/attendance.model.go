package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses and their learning-hour weights.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendancePartial = "PARTIAL"
)

// AttendanceWeight returns the session-duration weight a status contributes
// toward attendance percentage and learning hours.
func AttendanceWeight(status string) float64 {
	switch status {
	case AttendancePresent:
		return 1.0
	case AttendancePartial:
		return 0.5
	default:
		return 0
	}
}

// Attendance is the per-session record for an enrollment. One row per
// (enrollment, session) pair; re-marking overwrites status and keeps the
// latest marker audit, not a history.
type Attendance struct {
	gorm.Model
	EnrollmentID uint   `json:"enrollment_id" gorm:"index:idx_enrollment_session,unique;not null"`
	SessionID    uint   `json:"session_id" gorm:"index:idx_enrollment_session,unique;not null"`
	Status       string `json:"status" gorm:"type:varchar(10);default:'PRESENT'"`

	MarkedByID uint      `json:"marked_by_id"`
	MarkedAt   time.Time `json:"marked_at"`
	Note       string    `json:"note"`
}
