package services

import (
	"fmt"
	"time"

	"ldportal/models"

	"gorm.io/gorm"
)

// Enroll creates an enrollment for the user. assignedBy is nil for
// self-enrollment; when set, the enrollment is an assignment and starts in
// ASSIGNED. Capacity, duplicate and prerequisite checks run inside one
// transaction; the guarded enrolled_count increment runs first so concurrent
// enrolls for the same training serialize on the training row.
func Enroll(db *gorm.DB, userID, trainingID uint, assignedBy *models.User) (*models.Enrollment, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ? AND is_active = ?", userID, false, true).First(&user).Error; err != nil {
		return nil, Errorf(CodeNotFound, "user %d not found", userID)
	}

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return nil, Errorf(CodeNotFound, "training %d not found", trainingID)
	}

	if !enrollableStatus(training.Status, assignedBy != nil) {
		return nil, Errorf(CodeInvalidTransition, "cannot enroll in training %d: status is %s, not %s", trainingID, training.Status, models.TrainingPublished)
	}

	var enrollment models.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		// Guarded increment doubles as the per-training lock: the row stays
		// locked until commit, so a second enroll waits here.
		res := tx.Model(&models.Training{}).
			Where("id = ? AND (max_participants = 0 OR enrolled_count < max_participants)", trainingID).
			Update("enrolled_count", gorm.Expr("enrolled_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return Errorf(CodeCapacityExceeded, "training %d is full: %d of %d participants enrolled", trainingID, training.EnrolledCount, training.MaxParticipants)
		}

		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND training_id = ? AND status <> ?", userID, trainingID, models.EnrollmentCancelled).First(&existing).Error; err == nil {
			return Errorf(CodeAlreadyEnrolled, "user %d already has an active enrollment (%d) in training %d", userID, existing.ID, trainingID)
		}

		if err := checkPrerequisites(tx, userID, trainingID); err != nil {
			return err
		}

		enrollment = models.Enrollment{
			UserID:     userID,
			TrainingID: trainingID,
			Status:     models.EnrollmentEnrolled,
			EnrolledAt: time.Now(),
		}
		if assignedBy != nil {
			now := time.Now()
			enrollment.Status = models.EnrollmentAssigned
			enrollment.AssignedByID = &assignedBy.ID
			enrollment.AssignedAt = &now
		}

		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	if assignedBy != nil {
		Notify(db, userID, models.NotifyTrainingAssigned,
			"New Training Assigned",
			fmt.Sprintf("%s has assigned you to the training '%s'", assignedBy.Name, training.Title),
			"/trainings")
	} else {
		Notify(db, userID, models.NotifyEnrollmentConfirmed,
			"Enrollment Confirmed",
			fmt.Sprintf("You have been enrolled in '%s'", training.Title),
			"/trainings")
	}

	return &enrollment, nil
}

// CancelEnrollment cancels an enrollment. Mandatory assigned trainings
// cannot be self-cancelled; an Admin may always cancel. The row is kept,
// only its status changes.
func CancelEnrollment(db *gorm.DB, enrollmentID uint, caller *models.User) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := db.Preload("Training").Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return nil, Errorf(CodeNotFound, "enrollment %d not found", enrollmentID)
	}

	if enrollment.UserID != caller.ID && !caller.Role.IsAdmin() {
		return nil, Errorf(CodeForbidden, "user %d (%s) may not cancel enrollment %d: owner or Admin required", caller.ID, caller.Role, enrollmentID)
	}

	switch enrollment.Status {
	case models.EnrollmentCancelled:
		return nil, Errorf(CodeValidation, "enrollment %d is already cancelled", enrollmentID)
	case models.EnrollmentCompleted:
		return nil, Errorf(CodeCannotCancel, "enrollment %d is completed and cannot be cancelled", enrollmentID)
	}

	if enrollment.Training.IsMandatory && enrollment.AssignedByID != nil && !caller.Role.IsAdmin() {
		return nil, Errorf(CodeCannotCancel, "enrollment %d is a mandatory assignment and cannot be self-cancelled", enrollmentID)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&enrollment).Update("status", models.EnrollmentCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.Training{}).
			Where("id = ? AND enrolled_count > 0", enrollment.TrainingID).
			Update("enrolled_count", gorm.Expr("enrolled_count - 1")).Error
	})
	if err != nil {
		return nil, err
	}

	enrollment.Status = models.EnrollmentCancelled
	return &enrollment, nil
}

func enrollableStatus(status string, assigned bool) bool {
	if status == models.TrainingPublished {
		return true
	}
	// Admins and managers can still place people into a running cohort.
	return assigned && status == models.TrainingOngoing
}

// checkPrerequisites verifies the user holds a completion for every training
// declared as a prerequisite.
func checkPrerequisites(tx *gorm.DB, userID, trainingID uint) error {
	var prereqs []models.TrainingPrerequisite
	if err := tx.Where("training_id = ?", trainingID).Find(&prereqs).Error; err != nil {
		return err
	}

	for _, prereq := range prereqs {
		var count int64
		if err := tx.Model(&models.TrainingCompletion{}).
			Where("user_id = ? AND training_id = ?", userID, prereq.RequiredID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return Errorf(CodePrerequisiteNotMet, "user %d has not completed training %d, a prerequisite of training %d", userID, prereq.RequiredID, trainingID)
		}
	}
	return nil
}
