package progressValidator

import (
	"strconv"
	"strings"
	"time"

	"ldportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func pathID(c *fiber.Ctx, param string) (uint, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// CompletionID validates the :id path parameter.
func CompletionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid completion ID!", nil)
		}

		c.Locals("completionID", id)
		return c.Next()
	}
}

// UserID validates the :user_id path parameter.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c, "user_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		c.Locals("targetUserID", id)
		return c.Next()
	}
}

// Year validates the :year path parameter. Years far outside the portal's
// lifetime are rejected as typos.
func Year() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := strings.TrimSpace(c.Params("year"))
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 2000 || year > time.Now().Year()+1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid year!", nil)
		}

		c.Locals("year", year)
		return c.Next()
	}
}

// IssueCertificate validates the certificate issuance body.
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CertificateURL string `json:"certificate_url"`
		})

		if err := c.BodyParser(reqData); err != nil || strings.TrimSpace(reqData.CertificateURL) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate URL is required!", nil)
		}

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}
