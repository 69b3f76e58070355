package userValidator

import (
	"strconv"
	"strings"
	"time"

	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// CertificationID validates the :id path parameter.
func CertificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certification ID!", nil)
		}

		c.Locals("certificationID", uint(id))
		return c.Next()
	}
}

// UpdateProfile validates the profile update body, including the typed
// skill list.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			JobTitle string `json:"job_title"`
			Bio      string `json:"bio"`
			Location string `json:"location"`
			Skills   []struct {
				Name        string `json:"name"`
				Proficiency string `json:"proficiency"`
			} `json:"skills"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Bio) > 1000 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Bio must be under 1000 characters!", nil)
		}

		if len(reqData.Skills) > 50 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Too many skills!", nil)
		}

		for i := range reqData.Skills {
			reqData.Skills[i].Name = strings.TrimSpace(reqData.Skills[i].Name)
			if reqData.Skills[i].Name == "" {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Skill name cannot be empty!", nil)
			}
			if reqData.Skills[i].Proficiency == "" {
				reqData.Skills[i].Proficiency = string(models.ProficiencyBeginner)
			}
			if !models.Proficiency(reqData.Skills[i].Proficiency).Valid() {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
					"Proficiency must be BEGINNER, INTERMEDIATE, ADVANCED or EXPERT!", nil)
			}
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// UpdateRole validates the role change body.
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.Role(reqData.Role).Valid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"Role must be EMPLOYEE, MANAGER, ADMIN or SUPER_ADMIN!", nil)
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

// CreateCertification validates the external certification body.
func CreateCertification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name                string `json:"name"`
			IssuingOrganization string `json:"issuing_organization"`
			IssueDate           string `json:"issue_date"`
			ExpiryDate          string `json:"expiry_date"`
			CredentialID        string `json:"credential_id"`
			CredentialURL       string `json:"credential_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certification name is required!", nil)
		}

		if reqData.IssueDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.IssueDate); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Issue date must be YYYY-MM-DD!", nil)
			}
		}
		if reqData.ExpiryDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.ExpiryDate); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Expiry date must be YYYY-MM-DD!", nil)
			}
		}

		c.Locals("validatedCertification", reqData)
		return c.Next()
	}
}
