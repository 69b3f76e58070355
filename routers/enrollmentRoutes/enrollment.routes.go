package enrollmentRoutes

import (
	attendanceControllers "ldportal/controllers/attendance"
	completionControllers "ldportal/controllers/completion"
	enrollmentControllers "ldportal/controllers/enrollment"
	"ldportal/middleware"
	"ldportal/models"
	enrollmentValidators "ldportal/validators/enrollment"
	progressValidators "ldportal/validators/progress"
	trainingValidators "ldportal/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes wires enrollment, attendance and completion
// endpoints.
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/enrollment", middleware.JWTMiddleware, middleware.LoadCaller)

	enrollGroup.Post("/training/:id", trainingValidators.TrainingID(), enrollmentControllers.Enroll)
	enrollGroup.Post("/assign", middleware.RequireRole(models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin),
		enrollmentValidators.AssignTraining(), enrollmentControllers.Assign)
	enrollGroup.Post("/:id/cancel", enrollmentValidators.EnrollmentID(), enrollmentControllers.Cancel)
	enrollGroup.Get("/my", enrollmentControllers.MyEnrollments)
	enrollGroup.Get("/team", middleware.RequireRole(models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin),
		enrollmentControllers.TeamEnrollments)
	enrollGroup.Get("/training/:id", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		trainingValidators.TrainingID(), enrollmentControllers.TrainingEnrollments)

	// Attendance
	attendanceGroup := app.Group("/attendance", middleware.JWTMiddleware, middleware.LoadCaller)

	attendanceGroup.Post("/mark", enrollmentValidators.MarkAttendance(), attendanceControllers.Mark)
	attendanceGroup.Get("/session/:session_id", trainingValidators.SessionID(), attendanceControllers.SessionAttendance)
	attendanceGroup.Get("/enrollment/:id", enrollmentValidators.EnrollmentID(), attendanceControllers.EnrollmentAttendance)

	// Completions
	completionGroup := app.Group("/completion", middleware.JWTMiddleware, middleware.LoadCaller)

	completionGroup.Post("/enrollment/:id", enrollmentValidators.EnrollmentID(), completionControllers.Calculate)
	completionGroup.Get("/my", completionControllers.MyCompletions)
	completionGroup.Get("/user/:user_id", progressValidators.UserID(), completionControllers.UserCompletions)
	completionGroup.Get("/:id", progressValidators.CompletionID(), completionControllers.Get)
	completionGroup.Post("/:id/certificate", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		progressValidators.CompletionID(), progressValidators.IssueCertificate(), completionControllers.IssueCertificate)
}
