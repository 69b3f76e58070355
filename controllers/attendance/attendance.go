package attendanceController

import (
	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	"ldportal/services"

	"github.com/gofiber/fiber/v2"
)

// Mark upserts an attendance record for an enrollment and session
func Mark(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	reqData, ok := c.Locals("validatedAttendance").(*struct {
		EnrollmentID uint   `json:"enrollment_id"`
		SessionID    uint   `json:"session_id"`
		Status       string `json:"status"`
		Note         string `json:"note"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	attendance, err := services.MarkAttendance(database.Database.Db, reqData.EnrollmentID, reqData.SessionID, reqData.Status, caller, reqData.Note)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked successfully!", attendance)
}

// SessionAttendance lists attendance for a session
func SessionAttendance(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(uint)

	var records []models.Attendance
	if err := database.Database.Db.
		Where("session_id = ?", sessionID).
		Order("marked_at desc").
		Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", records)
}

// EnrollmentAttendance lists attendance history for an enrollment
func EnrollmentAttendance(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	enrollmentID := c.Locals("enrollmentID").(uint)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.UserID != caller.ID && !caller.Role.IsAdmin() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var records []models.Attendance
	if err := db.Where("enrollment_id = ?", enrollmentID).Order("marked_at asc").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", records)
}
