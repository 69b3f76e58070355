package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge tiers, lowest to highest.
const (
	BadgeBronze   = "BRONZE"
	BadgeSilver   = "SILVER"
	BadgeGold     = "GOLD"
	BadgePlatinum = "PLATINUM"
)

// BadgeRank orders tiers so an award can compare "higher than current".
// Unknown tiers rank below BRONZE.
func BadgeRank(tier string) int {
	switch tier {
	case BadgeBronze:
		return 1
	case BadgeSilver:
		return 2
	case BadgeGold:
		return 3
	case BadgePlatinum:
		return 4
	default:
		return 0
	}
}

// Badge is the yearly learning-hours award. One row per (user, year); the
// awarder upgrades the row in place when a higher tier is reached.
type Badge struct {
	gorm.Model
	UserID             uint      `json:"user_id" gorm:"index:idx_user_year,unique;not null"`
	YearEarned         int       `json:"year_earned" gorm:"index:idx_user_year,unique;not null"`
	BadgeType          string    `json:"badge_type" gorm:"type:varchar(10);not null"`
	HoursCompleted     float64   `json:"hours_completed"`
	TrainingsCompleted int       `json:"trainings_completed"`
	AwardedAt          time.Time `json:"awarded_at"`
}
