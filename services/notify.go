package services

import (
	"log"
	"time"

	"ldportal/config"
	"ldportal/models"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// Notify stores an in-app notification and, when a webhook is configured,
// forwards the event asynchronously. Failures are logged and swallowed: a
// notification must never roll back the operation that triggered it.
func Notify(db *gorm.DB, userID uint, kind, title, message, actionURL string) {
	notification := models.Notification{
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
	}

	if err := db.Create(&notification).Error; err != nil {
		log.Printf("[NOTIFY] Failed to store %s notification for user %d: %v", kind, userID, err)
		return
	}

	if config.AppConfig != nil && config.AppConfig.NotifyWebhookURL != "" {
		go postWebhook(config.AppConfig.NotifyWebhookURL, userID, kind, title, message)
	}
}

// NotifyRole fans a notification out to every active user holding the role.
func NotifyRole(db *gorm.DB, role models.Role, kind, title, message, actionURL string) {
	var users []models.User
	if err := db.Where("role = ? AND is_deleted = ? AND is_active = ?", role, false, true).Find(&users).Error; err != nil {
		log.Printf("[NOTIFY] Failed to resolve %s recipients: %v", role, err)
		return
	}

	for _, user := range users {
		Notify(db, user.ID, kind, title, message, actionURL)
	}
}

func postWebhook(url string, userID uint, kind, title, message string) {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"recipientUserId": userID,
			"kind":            kind,
			"payload": map[string]string{
				"title":   title,
				"message": message,
			},
		}).
		Post(url)
	if err != nil {
		log.Printf("[NOTIFY] Webhook call failed for user %d: %v", userID, err)
		return
	}
	if resp.IsError() {
		log.Printf("[NOTIFY] Webhook returned %d for user %d", resp.StatusCode(), userID)
	}
}
