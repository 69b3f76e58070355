package trainingValidator

import (
	"strconv"
	"strings"
	"time"

	"ldportal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SessionID validates the :session_id path parameter.
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("session_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session ID!", nil)
		}

		c.Locals("sessionID", uint(id))
		return c.Next()
	}
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionDate     string `json:"session_date"` // YYYY-MM-DD
			StartTime       string `json:"start_time"`   // HH:MM
			EndTime         string `json:"end_time"`     // HH:MM
			DurationMinutes int    `json:"duration_minutes"`
			Location        string `json:"location"`
			InstructorID    *uint  `json:"instructor_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if _, err := time.Parse("2006-01-02", reqData.SessionDate); err != nil {
			errors["session_date"] = "Session date must be YYYY-MM-DD!"
		}
		if reqData.StartTime != "" && !validClock(reqData.StartTime) {
			errors["start_time"] = "Start time must be HH:MM!"
		}
		if reqData.EndTime != "" && !validClock(reqData.EndTime) {
			errors["end_time"] = "End time must be HH:MM!"
		}
		if reqData.DurationMinutes <= 0 {
			errors["duration_minutes"] = "Duration must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSession", reqData)
		return c.Next()
	}
}

func UpdateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionDate     string `json:"session_date"`
			StartTime       string `json:"start_time"`
			EndTime         string `json:"end_time"`
			DurationMinutes int    `json:"duration_minutes"`
			Location        string `json:"location"`
			InstructorID    *uint  `json:"instructor_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SessionDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.SessionDate); err != nil {
				errors["session_date"] = "Session date must be YYYY-MM-DD!"
			}
		}
		if reqData.StartTime != "" && !validClock(reqData.StartTime) {
			errors["start_time"] = "Start time must be HH:MM!"
		}
		if reqData.EndTime != "" && !validClock(reqData.EndTime) {
			errors["end_time"] = "End time must be HH:MM!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSessionUpdate", reqData)
		return c.Next()
	}
}
