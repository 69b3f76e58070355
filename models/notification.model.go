package models

import "gorm.io/gorm"

// Notification kinds.
const (
	NotifyTrainingAssigned    = "TRAINING_ASSIGNED"
	NotifyTrainingSubmitted   = "TRAINING_SUBMITTED"
	NotifyTrainingApproved    = "TRAINING_APPROVED"
	NotifyTrainingRejected    = "TRAINING_REJECTED"
	NotifySessionReminder     = "SESSION_REMINDER"
	NotifyEnrollmentConfirmed = "ENROLLMENT_CONFIRMED"
	NotifyTrainingCompleted   = "TRAINING_COMPLETED"
	NotifyBadgeEarned         = "BADGE_EARNED"
)

// Notification is an in-app notification row. Delivery is fire-and-forget;
// a failed insert never rolls back the operation that triggered it.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Kind      string `json:"kind" gorm:"type:varchar(30);index"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url"`
	IsRead    bool   `json:"is_read" gorm:"default:false;index"`
}
