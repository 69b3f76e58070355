package completionController

import (
	"fmt"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	"ldportal/services"
	"ldportal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Calculate evaluates completion for an enrollment and records the result
// when the attendance threshold is met.
func Calculate(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.First(&enrollment, enrollmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !caller.Role.IsAdmin() && caller.ID != enrollment.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only calculate your own completions!", nil)
	}

	completion, err := services.CalculateCompletion(database.Database.Db, enrollmentID)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var user models.User
	if database.Database.Db.First(&user, completion.UserID).Error == nil {
		var training models.Training
		database.Database.Db.First(&training, completion.TrainingID)
		utils.SendCompletionEmail(user.Email, user.Name, training.Title, completion.LearningHours)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training completed.", completion)
}

// MyCompletions lists the caller's completion records.
func MyCompletions(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var completions []models.TrainingCompletion
	if err := database.Database.Db.Where("user_id = ?", caller.ID).
		Order("completed_at DESC").Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completions fetched.", completions)
}

// UserCompletions lists completion records for a given user. Admins only;
// managers may view members of their own team.
func UserCompletions(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	targetID := c.Locals("targetUserID").(uint)

	var target models.User
	if err := database.Database.Db.First(&target, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if !caller.Role.IsAdmin() {
		if caller.Role != models.RoleManager || target.ManagerID == nil || *target.ManagerID != caller.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view completions of your team!", nil)
		}
	}

	var completions []models.TrainingCompletion
	if err := database.Database.Db.Where("user_id = ?", targetID).
		Order("completed_at DESC").Find(&completions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completions fetched.", completions)
}

// Get returns a single completion record.
func Get(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	completionID := c.Locals("completionID").(uint)

	var completion models.TrainingCompletion
	if err := database.Database.Db.First(&completion, completionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Completion not found!", nil)
	}

	if !caller.Role.IsAdmin() && caller.ID != completion.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own completions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completion fetched.", completion)
}

// IssueCertificate attaches a certificate to a completion record and
// assigns it a credential id. Admins only.
func IssueCertificate(c *fiber.Ctx) error {
	completionID := c.Locals("completionID").(uint)
	reqData := c.Locals("validatedCertificate").(*struct {
		CertificateURL string `json:"certificate_url"`
	})

	var completion models.TrainingCompletion
	if err := database.Database.Db.First(&completion, completionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Completion not found!", nil)
	}

	if completion.CertificateIssued {
		return middleware.JsonResponse(c, fiber.StatusConflict, false,
			fmt.Sprintf("Certificate already issued with credential %s!", completion.CredentialID), nil)
	}

	completion.CertificateIssued = true
	completion.CertificateURL = reqData.CertificateURL
	completion.CredentialID = uuid.NewString()

	if err := database.Database.Db.Save(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued.", completion)
}
