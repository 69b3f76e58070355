package middleware

import (
	"ldportal/database"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// LoadCaller resolves the authenticated user from the database and stores it
// in Locals under "caller". Rejects deleted or deactivated accounts.
func LoadCaller(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", userID, false, true).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	c.Locals("caller", &user)
	return c.Next()
}

// RequireRole returns a middleware that rejects callers whose role is not in
// the allowed set. Must run after LoadCaller.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := c.Locals("caller").(*models.User)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, role := range roles {
			if caller.Role == role {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// Caller returns the user loaded by LoadCaller, or nil.
func Caller(c *fiber.Ctx) *models.User {
	caller, _ := c.Locals("caller").(*models.User)
	return caller
}
