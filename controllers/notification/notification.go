package notificationController

import (
	"strconv"
	"strings"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// List returns the caller's notifications, newest first. ?unread=true
// restricts it to unread rows.
func List(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	query := database.Database.Db.Where("user_id = ?", caller.ID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var unreadCount int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", caller.ID, false).Count(&unreadCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched.", fiber.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkRead marks a single notification as read.
func MarkRead(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	id, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
	}

	var notification models.Notification
	if err := database.Database.Db.
		Where("id = ? AND user_id = ?", id, caller.ID).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsRead = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", notification)
}

// MarkAllRead marks every unread notification of the caller as read.
func MarkAllRead(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	result := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", caller.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read.", fiber.Map{
		"updated": result.RowsAffected,
	})
}
