package services

import (
	"time"

	"ldportal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkAttendance upserts the attendance record for (enrollment, session).
// Re-marking overwrites the previous status; marked_by/marked_at always
// reflect the latest write. The marker must be an Admin or the session's
// (or training's) instructor.
func MarkAttendance(db *gorm.DB, enrollmentID, sessionID uint, status string, markedBy *models.User, note string) (*models.Attendance, error) {
	if models.AttendanceWeight(status) == 0 && status != models.AttendanceAbsent {
		return nil, Errorf(CodeValidation, "invalid attendance status %q", status)
	}

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return nil, Errorf(CodeNotFound, "enrollment %d not found", enrollmentID)
	}
	if enrollment.Status == models.EnrollmentCancelled {
		return nil, Errorf(CodeValidation, "enrollment %d is cancelled; attendance cannot be marked", enrollmentID)
	}

	var session models.TrainingSession
	if err := db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return nil, Errorf(CodeNotFound, "session %d not found", sessionID)
	}

	if session.TrainingID != enrollment.TrainingID {
		return nil, Errorf(CodeSessionNotInTraining, "session %d belongs to training %d, not to enrollment %d's training %d", sessionID, session.TrainingID, enrollmentID, enrollment.TrainingID)
	}

	if !canMarkAttendance(db, markedBy, &session) {
		return nil, Errorf(CodeForbidden, "user %d (%s) may not mark attendance: Admin or session instructor required", markedBy.ID, markedBy.Role)
	}

	attendance := models.Attendance{
		EnrollmentID: enrollmentID,
		SessionID:    sessionID,
		Status:       status,
		MarkedByID:   markedBy.ID,
		MarkedAt:     time.Now(),
		Note:         note,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by_id", "marked_at", "note", "updated_at"}),
		}).Create(&attendance).Error; err != nil {
			return err
		}

		// First attendance moves the enrollment into IN_PROGRESS.
		if enrollment.Status == models.EnrollmentEnrolled || enrollment.Status == models.EnrollmentAssigned {
			return tx.Model(&enrollment).Update("status", models.EnrollmentInProgress).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var saved models.Attendance
	if err := db.Where("enrollment_id = ? AND session_id = ?", enrollmentID, sessionID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func canMarkAttendance(db *gorm.DB, user *models.User, session *models.TrainingSession) bool {
	if user.Role.IsAdmin() {
		return true
	}
	if session.InstructorID != nil && *session.InstructorID == user.ID {
		return true
	}

	var training models.Training
	if err := db.Select("instructor_id").Where("id = ?", session.TrainingID).First(&training).Error; err != nil {
		return false
	}
	return training.InstructorID != nil && *training.InstructorID == user.ID
}
