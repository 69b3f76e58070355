package trainingValidator

import (
	"strconv"
	"strings"

	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

func validTrainingType(t string) bool {
	switch t {
	case models.TrainingTypeOnline, models.TrainingTypeClassroom, models.TrainingTypeWorkshop, models.TrainingTypeWebinar:
		return true
	}
	return false
}

// TrainingID validates the :id path parameter.
func TrainingID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid training ID!", nil)
		}

		c.Locals("trainingID", uint(id))
		return c.Next()
	}
}

func CreateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string  `json:"title"`
			Description     string  `json:"description"`
			Category        string  `json:"category"`
			Type            string  `json:"type"`
			DurationMinutes int     `json:"duration_minutes"`
			MaxParticipants int     `json:"max_participants"`
			IsMandatory     bool    `json:"is_mandatory"`
			InstructorID    *uint   `json:"instructor_id"`
			StartDate       *string `json:"start_date"`
			EndDate         *string `json:"end_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Type != "" && !validTrainingType(reqData.Type) {
			errors["type"] = "Type must be ONLINE, CLASSROOM, WORKSHOP or WEBINAR!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}
		if reqData.MaxParticipants < 0 {
			errors["max_participants"] = "Capacity cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTraining", reqData)
		return c.Next()
	}
}

func UpdateTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			Category        string `json:"category"`
			Type            string `json:"type"`
			DurationMinutes int    `json:"duration_minutes"`
			MaxParticipants int    `json:"max_participants"`
			IsMandatory     *bool  `json:"is_mandatory"`
			InstructorID    *uint  `json:"instructor_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Type != "" && !validTrainingType(reqData.Type) {
			return middleware.ValidationErrorResponse(c, map[string]string{"type": "Type must be ONLINE, CLASSROOM, WORKSHOP or WEBINAR!"})
		}

		c.Locals("validatedTrainingUpdate", reqData)
		return c.Next()
	}
}

func RejectTraining() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}

func AddPrerequisite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequiredID uint `json:"required_id"`
		})

		if err := c.BodyParser(reqData); err != nil || reqData.RequiredID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A valid required training ID is required!", nil)
		}

		c.Locals("validatedPrerequisite", reqData)
		return c.Next()
	}
}

func ListTrainings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int    `json:"page"`
			Limit    *int    `json:"limit"`
			Category *string `json:"category"`
			Status   *string `json:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedTrainingList", reqData)
		return c.Next()
	}
}
