package trainingController

import (
	"time"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// canManageSessions mirrors the training edit rules: sessions are freely
// editable before publication; afterwards an Admin may still manage an
// ongoing cohort.
func canManageSessions(training *models.Training, caller *models.User) bool {
	switch training.Status {
	case models.TrainingDraft, models.TrainingRejected, models.TrainingPendingApproval:
		return training.CreatedByID == caller.ID || caller.Role.IsAdmin()
	default:
		return caller.Role.IsAdmin()
	}
}

// CreateSession adds a session to a training
func CreateSession(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	db := database.Database.Db

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if !canManageSessions(&training, caller) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	reqData, ok := c.Locals("validatedSession").(*struct {
		SessionDate     string `json:"session_date"`
		StartTime       string `json:"start_time"`
		EndTime         string `json:"end_time"`
		DurationMinutes int    `json:"duration_minutes"`
		Location        string `json:"location"`
		InstructorID    *uint  `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	sessionDate, _ := time.Parse("2006-01-02", reqData.SessionDate)

	session := models.TrainingSession{
		TrainingID:      trainingID,
		SessionDate:     sessionDate,
		StartTime:       reqData.StartTime,
		EndTime:         reqData.EndTime,
		DurationMinutes: reqData.DurationMinutes,
		Location:        reqData.Location,
		InstructorID:    reqData.InstructorID,
	}

	if err := db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session created successfully!", session)
}

// UpdateSession edits a session
func UpdateSession(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	sessionID := c.Locals("sessionID").(uint)

	db := database.Database.Db

	var session models.TrainingSession
	if err := db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	var training models.Training
	if err := db.Where("id = ?", session.TrainingID).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if !canManageSessions(&training, caller) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	reqData, ok := c.Locals("validatedSessionUpdate").(*struct {
		SessionDate     string `json:"session_date"`
		StartTime       string `json:"start_time"`
		EndTime         string `json:"end_time"`
		DurationMinutes int    `json:"duration_minutes"`
		Location        string `json:"location"`
		InstructorID    *uint  `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.SessionDate != "" {
		if d, err := time.Parse("2006-01-02", reqData.SessionDate); err == nil {
			session.SessionDate = d
		}
	}
	if reqData.StartTime != "" {
		session.StartTime = reqData.StartTime
	}
	if reqData.EndTime != "" {
		session.EndTime = reqData.EndTime
	}
	if reqData.DurationMinutes > 0 {
		session.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.Location != "" {
		session.Location = reqData.Location
	}
	if reqData.InstructorID != nil {
		session.InstructorID = reqData.InstructorID
	}

	if err := db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session updated successfully!", session)
}

// DeleteSession soft deletes a session
func DeleteSession(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	sessionID := c.Locals("sessionID").(uint)

	db := database.Database.Db

	var session models.TrainingSession
	if err := db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	var training models.Training
	if err := db.Where("id = ?", session.TrainingID).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if !canManageSessions(&training, caller) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	session.IsDeleted = true
	if err := db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session deleted successfully!", nil)
}

// ListSessions lists a training's sessions, soonest first.
func ListSessions(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)

	var sessions []models.TrainingSession
	if err := database.Database.Db.
		Where("training_id = ? AND is_deleted = ?", trainingID, false).
		Order("session_date asc").
		Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", sessions)
}
