package services

import (
	"fmt"
	"time"

	"ldportal/models"

	"gorm.io/gorm"
)

// Badge tier thresholds in learning hours.
const (
	BronzeHours   = 20
	SilverHours   = 40
	GoldHours     = 60
	PlatinumHours = 80
)

// TierForHours returns the highest badge tier the hours cross, or "" when
// below the BRONZE threshold.
func TierForHours(hours float64) string {
	switch {
	case hours >= PlatinumHours:
		return models.BadgePlatinum
	case hours >= GoldHours:
		return models.BadgeGold
	case hours >= SilverHours:
		return models.BadgeSilver
	case hours >= BronzeHours:
		return models.BadgeBronze
	default:
		return ""
	}
}

// CalculateBadge sums the user's completed learning hours for the calendar
// year and awards or upgrades the single (user, year) badge. The boolean
// result reports whether a badge was created or upgraded this call; repeat
// invocations with no new completions are no-ops and trigger no duplicate
// notification. A user below the BRONZE threshold gets (nil, false, nil) —
// "not eligible" is an expected outcome, not an error.
func CalculateBadge(db *gorm.DB, userID uint, year int) (*models.Badge, bool, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var completions []models.TrainingCompletion
	if err := db.Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, yearStart, yearEnd).Find(&completions).Error; err != nil {
		return nil, false, err
	}

	var totalHours float64
	for _, c := range completions {
		totalHours += c.LearningHours
	}

	tier := TierForHours(totalHours)
	if tier == "" {
		return nil, false, nil
	}

	var badge models.Badge
	awarded := false

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND year_earned = ?", userID, year).First(&badge).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			badge = models.Badge{
				UserID:             userID,
				YearEarned:         year,
				BadgeType:          tier,
				HoursCompleted:     totalHours,
				TrainingsCompleted: len(completions),
				AwardedAt:          time.Now(),
			}
			awarded = true
			return tx.Create(&badge).Error
		case err != nil:
			return err
		}

		if models.BadgeRank(tier) <= models.BadgeRank(badge.BadgeType) {
			// Existing badge is at or above the computed tier.
			return nil
		}

		badge.BadgeType = tier
		badge.HoursCompleted = totalHours
		badge.TrainingsCompleted = len(completions)
		badge.AwardedAt = time.Now()
		awarded = true
		return tx.Save(&badge).Error
	})
	if err != nil {
		return nil, false, err
	}

	if awarded {
		Notify(db, userID, models.NotifyBadgeEarned,
			fmt.Sprintf("%s Badge Earned!", badge.BadgeType),
			fmt.Sprintf("Congratulations! You've earned a %s badge for %.1f learning hours in %d", badge.BadgeType, totalHours, year),
			"/badges")
	}

	return &badge, awarded, nil
}
