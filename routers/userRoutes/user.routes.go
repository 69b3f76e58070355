package userRoutes

import (
	departmentControllers "ldportal/controllers/department"
	notificationControllers "ldportal/controllers/notification"
	userControllers "ldportal/controllers/user"
	"ldportal/middleware"
	"ldportal/models"
	progressValidators "ldportal/validators/progress"
	userValidators "ldportal/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes wires user management, profiles, certifications,
// departments and notifications.
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware, middleware.LoadCaller)

	userGroup.Get("/team", middleware.RequireRole(models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin),
		userControllers.MyTeam)
	userGroup.Get("/list", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		userControllers.ListUsers)
	userGroup.Patch("/:user_id/role", middleware.RequireRole(models.RoleSuperAdmin),
		progressValidators.UserID(), userValidators.UpdateRole(), userControllers.UpdateRole)

	// Profiles
	profileGroup := app.Group("/profile", middleware.JWTMiddleware, middleware.LoadCaller)

	profileGroup.Get("/my", userControllers.MyProfile)
	profileGroup.Put("/my", userValidators.UpdateProfile(), userControllers.UpdateProfile)
	profileGroup.Get("/user/:user_id", progressValidators.UserID(), userControllers.UserProfile)

	// External certifications
	certGroup := app.Group("/certification", middleware.JWTMiddleware, middleware.LoadCaller)

	certGroup.Post("/create", userValidators.CreateCertification(), userControllers.AddCertification)
	certGroup.Get("/my", userControllers.MyCertifications)
	certGroup.Delete("/:id", userValidators.CertificationID(), userControllers.DeleteCertification)

	// Departments
	deptGroup := app.Group("/department", middleware.JWTMiddleware, middleware.LoadCaller)

	deptGroup.Get("/list", departmentControllers.List)
	deptGroup.Post("/create", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		departmentControllers.Create)
	deptGroup.Post("/:id/assign", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		departmentControllers.AssignUser)

	// Notifications
	notifGroup := app.Group("/notification", middleware.JWTMiddleware, middleware.LoadCaller)

	notifGroup.Get("/list", notificationControllers.List)
	notifGroup.Patch("/:id/read", notificationControllers.MarkRead)
	notifGroup.Patch("/read/all", notificationControllers.MarkAllRead)
}
