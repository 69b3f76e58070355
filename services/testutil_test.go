package services_test

import (
	"testing"
	"time"

	"ldportal/database"
	"ldportal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTraining(t *testing.T, db *gorm.DB, creator *models.User, status string, maxParticipants int) *models.Training {
	training := &models.Training{
		Title:           "Go Fundamentals",
		Category:        "Engineering",
		Type:            models.TrainingTypeClassroom,
		MaxParticipants: maxParticipants,
		Status:          status,
		CreatedByID:     creator.ID,
	}
	require.NoError(t, db.Create(training).Error)
	return training
}

func createSession(t *testing.T, db *gorm.DB, trainingID uint, durationMinutes int) *models.TrainingSession {
	session := &models.TrainingSession{
		TrainingID:      trainingID,
		SessionDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "12:00",
		DurationMinutes: durationMinutes,
		Location:        "Room 4",
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func createEnrollment(t *testing.T, db *gorm.DB, userID, trainingID uint, status string) *models.Enrollment {
	enrollment := &models.Enrollment{
		UserID:     userID,
		TrainingID: trainingID,
		Status:     status,
		EnrolledAt: time.Now(),
	}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}

func createCompletion(t *testing.T, db *gorm.DB, userID, trainingID, enrollmentID uint, hours float64, completedAt time.Time) *models.TrainingCompletion {
	completion := &models.TrainingCompletion{
		EnrollmentID:         enrollmentID,
		UserID:               userID,
		TrainingID:           trainingID,
		CompletedAt:          completedAt,
		AttendancePercentage: 100,
		LearningHours:        hours,
	}
	require.NoError(t, db.Create(completion).Error)
	return completion
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint, kind string) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND kind = ?", userID, kind).Count(&count).Error)
	return count
}
