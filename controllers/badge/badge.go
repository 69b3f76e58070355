package badgeController

import (
	"time"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	"ldportal/services"
	"ldportal/utils"

	"github.com/gofiber/fiber/v2"
)

// Calculate evaluates and awards the annual badge for a user. Admins only.
func Calculate(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	year := c.Locals("year").(int)

	var target models.User
	if err := database.Database.Db.First(&target, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	badge, awarded, err := services.CalculateBadge(database.Database.Db, targetID, year)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if badge == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Not enough learning hours for a badge.", nil)
	}

	if awarded {
		utils.SendBadgeEmail(target.Email, target.Name, badge.BadgeType, badge.YearEarned, badge.HoursCompleted)
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Badge awarded.", badge)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge already up to date.", badge)
}

// MyBadges lists the caller's badges across years.
func MyBadges(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var badges []models.Badge
	if err := database.Database.Db.Where("user_id = ?", caller.ID).
		Order("year_earned DESC").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched.", badges)
}

// UserBadges lists badges of a given user.
func UserBadges(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var badges []models.Badge
	if err := database.Database.Db.Where("user_id = ?", targetID).
		Order("year_earned DESC").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched.", badges)
}

// YearBadges lists every badge awarded for a given year. Admins only.
func YearBadges(c *fiber.Ctx) error {
	year := c.Locals("year").(int)

	var badges []models.Badge
	if err := database.Database.Db.Where("year_earned = ?", year).
		Order("hours_completed DESC").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched.", badges)
}

// Statistics aggregates badge counts per tier for the current year.
func Statistics(c *fiber.Ctx) error {
	year := time.Now().Year()

	type tierCount struct {
		BadgeType string `json:"badge_type"`
		Count     int64  `json:"count"`
	}

	var counts []tierCount
	if err := database.Database.Db.Model(&models.Badge{}).
		Select("badge_type, COUNT(*) as count").
		Where("year_earned = ?", year).
		Group("badge_type").Scan(&counts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch statistics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge statistics fetched.", fiber.Map{
		"year":  year,
		"tiers": counts,
	})
}
