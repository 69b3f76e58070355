package badgeRoutes

import (
	badgeControllers "ldportal/controllers/badge"
	"ldportal/middleware"
	"ldportal/models"
	progressValidators "ldportal/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupBadgeRoutes wires the annual badge endpoints.
func SetupBadgeRoutes(app *fiber.App) {
	badgeGroup := app.Group("/badge", middleware.JWTMiddleware, middleware.LoadCaller)

	badgeGroup.Get("/my", badgeControllers.MyBadges)
	badgeGroup.Get("/statistics", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		badgeControllers.Statistics)
	badgeGroup.Get("/user/:user_id", middleware.RequireRole(models.RoleManager, models.RoleAdmin, models.RoleSuperAdmin),
		progressValidators.UserID(), badgeControllers.UserBadges)
	badgeGroup.Get("/year/:year", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		progressValidators.Year(), badgeControllers.YearBadges)
	badgeGroup.Post("/calculate/:user_id/:year", middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		progressValidators.UserID(), progressValidators.Year(), badgeControllers.Calculate)
}
