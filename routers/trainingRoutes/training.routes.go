package trainingRoutes

import (
	controllers "ldportal/controllers/training"
	"ldportal/middleware"
	"ldportal/models"
	validators "ldportal/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes wires the training catalog, the approval workflow
// and session management.
func SetupTrainingRoutes(app *fiber.App) {
	trainingGroup := app.Group("/training", middleware.JWTMiddleware, middleware.LoadCaller)

	// Catalog
	trainingGroup.Get("/list", validators.ListTrainings(), controllers.ListTrainings)
	trainingGroup.Get("/pending", middleware.RequireRole(models.RoleSuperAdmin), controllers.ListPendingTrainings)
	trainingGroup.Get("/:id", validators.TrainingID(), controllers.GetTraining)

	// Authoring
	trainingGroup.Post("/create", middleware.RequireRole(models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin),
		validators.CreateTraining(), controllers.CreateTraining)
	trainingGroup.Put("/:id", validators.TrainingID(), validators.UpdateTraining(), controllers.UpdateTraining)
	trainingGroup.Delete("/:id", validators.TrainingID(), controllers.DeleteTraining)

	// Approval workflow
	trainingGroup.Post("/:id/submit", validators.TrainingID(), controllers.SubmitTraining)
	trainingGroup.Post("/:id/approve", middleware.RequireRole(models.RoleSuperAdmin),
		validators.TrainingID(), controllers.ApproveTraining)
	trainingGroup.Post("/:id/reject", middleware.RequireRole(models.RoleSuperAdmin),
		validators.TrainingID(), validators.RejectTraining(), controllers.RejectTraining)

	// Prerequisites
	trainingGroup.Post("/:id/prerequisite", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		validators.TrainingID(), validators.AddPrerequisite(), controllers.AddPrerequisite)

	// Sessions
	trainingGroup.Get("/:id/sessions", validators.TrainingID(), controllers.ListSessions)
	trainingGroup.Post("/:id/session", validators.TrainingID(), validators.CreateSession(), controllers.CreateSession)
	trainingGroup.Put("/:id/session/:session_id", validators.TrainingID(), validators.SessionID(),
		validators.UpdateSession(), controllers.UpdateSession)
	trainingGroup.Delete("/:id/session/:session_id", validators.TrainingID(), validators.SessionID(),
		controllers.DeleteSession)
}
