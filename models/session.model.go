package models

import (
	"time"

	"gorm.io/gorm"
)

// TrainingSession is one scheduled sitting of a training. Its duration drives
// the learning-hours computation.
type TrainingSession struct {
	gorm.Model
	TrainingID      uint      `json:"training_id" gorm:"index;not null"`
	SessionDate     time.Time `json:"session_date" gorm:"index;not null"`
	StartTime       string    `json:"start_time" gorm:"type:varchar(5)"` // HH:MM
	EndTime         string    `json:"end_time" gorm:"type:varchar(5)"`   // HH:MM
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	Location        string    `json:"location"`
	InstructorID    *uint     `json:"instructor_id"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}
