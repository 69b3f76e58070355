package userController

import (
	"time"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// AddCertification records an externally issued certification on the
// caller's record.
func AddCertification(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	reqData := c.Locals("validatedCertification").(*struct {
		Name                string `json:"name"`
		IssuingOrganization string `json:"issuing_organization"`
		IssueDate           string `json:"issue_date"`
		ExpiryDate          string `json:"expiry_date"`
		CredentialID        string `json:"credential_id"`
		CredentialURL       string `json:"credential_url"`
	})

	cert := models.Certification{
		UserID:              caller.ID,
		Name:                reqData.Name,
		IssuingOrganization: reqData.IssuingOrganization,
		CredentialID:        reqData.CredentialID,
		CredentialURL:       reqData.CredentialURL,
	}

	if reqData.IssueDate != "" {
		cert.IssueDate, _ = time.Parse("2006-01-02", reqData.IssueDate)
	}
	if reqData.ExpiryDate != "" {
		expiry, _ := time.Parse("2006-01-02", reqData.ExpiryDate)
		cert.ExpiryDate = &expiry
	}

	if err := database.Database.Db.Create(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add certification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certification added.", cert)
}

// MyCertifications lists the caller's external certifications.
func MyCertifications(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var certs []models.Certification
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", caller.ID, false).
		Order("issue_date DESC").Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certifications fetched.", certs)
}

// DeleteCertification soft-deletes one of the caller's certifications.
func DeleteCertification(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	certID := c.Locals("certificationID").(uint)

	var cert models.Certification
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", certID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certification not found!", nil)
	}

	if cert.UserID != caller.ID && !caller.Role.IsAdmin() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own certifications!", nil)
	}

	cert.IsDeleted = true
	if err := database.Database.Db.Save(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete certification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certification deleted.", nil)
}
