package services

import (
	"fmt"
	"time"

	"ldportal/models"

	"gorm.io/gorm"
)

// CompletionThreshold is the minimum attendance percentage for a completion.
const CompletionThreshold = 80.0

// CalculateCompletion derives attendance percentage and learning hours for
// an enrollment and, when the threshold is met, records the one-and-only
// TrainingCompletion and flips the enrollment to COMPLETED.
//
// PRESENT contributes the full session duration, PARTIAL half, ABSENT or
// unmarked nothing. Below-threshold results are a reportable business
// failure, not a system error: nothing is written and the enrollment keeps
// its current status.
func CalculateCompletion(db *gorm.DB, enrollmentID uint) (*models.TrainingCompletion, error) {
	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return nil, Errorf(CodeNotFound, "enrollment %d not found", enrollmentID)
	}
	if enrollment.Status == models.EnrollmentCancelled {
		return nil, Errorf(CodeValidation, "enrollment %d is cancelled and cannot be completed", enrollmentID)
	}

	var existing models.TrainingCompletion
	if err := db.Where("enrollment_id = ?", enrollmentID).First(&existing).Error; err == nil {
		return nil, Errorf(CodeAlreadyCompleted, "enrollment %d already has completion %d; recomputation requires explicit superseding", enrollmentID, existing.ID)
	}

	var sessions []models.TrainingSession
	if err := db.Where("training_id = ? AND is_deleted = ?", enrollment.TrainingID, false).Find(&sessions).Error; err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, Errorf(CodeNoSessionsScheduled, "training %d has no sessions scheduled; attendance percentage is undefined", enrollment.TrainingID)
	}

	var attendances []models.Attendance
	if err := db.Where("enrollment_id = ?", enrollmentID).Find(&attendances).Error; err != nil {
		return nil, err
	}

	attendanceBySession := make(map[uint]string, len(attendances))
	for _, a := range attendances {
		attendanceBySession[a.SessionID] = a.Status
	}

	var totalMinutes, weightedMinutes float64
	for _, s := range sessions {
		totalMinutes += float64(s.DurationMinutes)
		weightedMinutes += models.AttendanceWeight(attendanceBySession[s.ID]) * float64(s.DurationMinutes)
	}

	percentage := weightedMinutes / totalMinutes * 100

	if percentage < CompletionThreshold {
		return nil, Errorf(CodeThresholdNotMet, "enrollment %d attendance is %.1f%%, below the %.0f%% threshold", enrollmentID, percentage, CompletionThreshold)
	}

	now := time.Now()
	completion := models.TrainingCompletion{
		EnrollmentID:         enrollmentID,
		UserID:               enrollment.UserID,
		TrainingID:           enrollment.TrainingID,
		CompletedAt:          now,
		AttendancePercentage: percentage,
		LearningHours:        weightedMinutes / 60,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}
		return tx.Model(&enrollment).Updates(map[string]interface{}{
			"status":       models.EnrollmentCompleted,
			"completed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	var training models.Training
	if err := db.Select("title").Where("id = ?", enrollment.TrainingID).First(&training).Error; err == nil {
		Notify(db, enrollment.UserID, models.NotifyTrainingCompleted,
			"Training Completed",
			fmt.Sprintf("You completed '%s' with %.1f learning hours", training.Title, completion.LearningHours),
			"/completions")
	}

	return &completion, nil
}
