package enrollmentValidator

import (
	"strconv"
	"strings"

	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentID validates the :id path parameter.
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		c.Locals("enrollmentID", uint(id))
		return c.Next()
	}
}

func AssignTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID     uint `json:"user_id"`
			TrainingID uint `json:"training_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.TrainingID == 0 {
			errors["training_id"] = "Training ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssign", reqData)
		return c.Next()
	}
}

func MarkAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EnrollmentID uint   `json:"enrollment_id"`
			SessionID    uint   `json:"session_id"`
			Status       string `json:"status"`
			Note         string `json:"note"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EnrollmentID == 0 {
			errors["enrollment_id"] = "Enrollment ID is required!"
		}
		if reqData.SessionID == 0 {
			errors["session_id"] = "Session ID is required!"
		}
		switch reqData.Status {
		case models.AttendancePresent, models.AttendanceAbsent, models.AttendancePartial:
		default:
			errors["status"] = "Status must be PRESENT, ABSENT or PARTIAL!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		return c.Next()
	}
}
