package enrollmentController

import (
	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	"ldportal/services"
	"ldportal/utils"

	"github.com/gofiber/fiber/v2"
)

// Enroll self-enrolls the caller into a training
func Enroll(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	db := database.Database.Db

	enrollment, err := services.Enroll(db, caller.ID, trainingID, nil)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var training models.Training
	if err := db.Select("title").Where("id = ?", trainingID).First(&training).Error; err == nil {
		utils.SendEnrollmentEmail(caller.Email, caller.Name, training.Title, false)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in training successfully!", enrollment)
}

// Assign enrolls another user into a training on their behalf.
// Restricted to Manager/Admin by the route middleware.
func Assign(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	reqData, ok := c.Locals("validatedAssign").(*struct {
		UserID     uint `json:"user_id"`
		TrainingID uint `json:"training_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Managers may only assign within their own team.
	if caller.Role == models.RoleManager {
		var member models.User
		if err := db.Where("id = ? AND manager_id = ?", reqData.UserID, caller.ID).First(&member).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User is not part of your team!", nil)
		}
	}

	enrollment, err := services.Enroll(db, reqData.UserID, reqData.TrainingID, caller)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var user models.User
	var training models.Training
	if db.Where("id = ?", reqData.UserID).First(&user).Error == nil &&
		db.Select("title").Where("id = ?", reqData.TrainingID).First(&training).Error == nil {
		utils.SendEnrollmentEmail(user.Email, user.Name, training.Title, true)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training assigned successfully!", enrollment)
}

// Cancel cancels an enrollment
func Cancel(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	enrollmentID := c.Locals("enrollmentID").(uint)

	enrollment, err := services.CancelEnrollment(database.Database.Db, enrollmentID, caller)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment cancelled!", enrollment)
}

// MyEnrollments lists the caller's enrollments with their trainings.
func MyEnrollments(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ?", caller.ID).
		Preload("Training").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// TrainingEnrollments lists all enrollments of a training for admins.
func TrainingEnrollments(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("training_id = ?", trainingID).
		Order("created_at asc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// TeamEnrollments lists the enrollments of the caller's direct reports.
func TeamEnrollments(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	db := database.Database.Db

	var team []models.User
	if err := db.Where("manager_id = ? AND is_deleted = ?", caller.ID, false).Find(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team!", nil)
	}

	if len(team) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Team enrollments fetched!", []models.Enrollment{})
	}

	ids := make([]uint, 0, len(team))
	for _, member := range team {
		ids = append(ids, member.ID)
	}

	var enrollments []models.Enrollment
	if err := db.Where("user_id IN ?", ids).Preload("Training").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team enrollments fetched!", enrollments)
}
