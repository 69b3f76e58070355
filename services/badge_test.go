package services_test

import (
	"testing"
	"time"

	"ldportal/models"
	"ldportal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForHours(t *testing.T) {
	assert.Equal(t, "", services.TierForHours(19.9))
	assert.Equal(t, models.BadgeBronze, services.TierForHours(20))
	assert.Equal(t, models.BadgeBronze, services.TierForHours(39.9))
	assert.Equal(t, models.BadgeSilver, services.TierForHours(40))
	assert.Equal(t, models.BadgeGold, services.TierForHours(60))
	assert.Equal(t, models.BadgePlatinum, services.TierForHours(80))
	assert.Equal(t, models.BadgePlatinum, services.TierForHours(200))
}

func TestCalculateBadge_BelowBronzeIsNotEligible(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, admin, models.TrainingCompleted, 0)
	enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
	createCompletion(t, db, employee.ID, training.ID, enrollment.ID, 15, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	badge, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	assert.Nil(t, badge)
	assert.False(t, awarded)

	var count int64
	require.NoError(t, db.Model(&models.Badge{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCalculateBadge_AwardsSilverFor45Hours(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	for i, hours := range []float64{20, 25} {
		training := createTraining(t, db, admin, models.TrainingCompleted, 0)
		enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
		createCompletion(t, db, employee.ID, training.ID, enrollment.ID, hours,
			time.Date(2025, time.Month(i+3), 1, 0, 0, 0, 0, time.UTC))
	}

	badge, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	require.NotNil(t, badge)
	assert.True(t, awarded)
	assert.Equal(t, models.BadgeSilver, badge.BadgeType)
	assert.InDelta(t, 45.0, badge.HoursCompleted, 0.001)
	assert.Equal(t, 2, badge.TrainingsCompleted)
	assert.Equal(t, 2025, badge.YearEarned)

	assert.EqualValues(t, 1, countNotifications(t, db, employee.ID, models.NotifyBadgeEarned))
}

func TestCalculateBadge_UpgradesInPlace(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	training := createTraining(t, db, admin, models.TrainingCompleted, 0)
	enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
	createCompletion(t, db, employee.ID, training.ID, enrollment.ID, 45, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	first, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	require.True(t, awarded)
	assert.Equal(t, models.BadgeSilver, first.BadgeType)

	// More hours land later in the same year.
	training2 := createTraining(t, db, admin, models.TrainingCompleted, 0)
	enrollment2 := createEnrollment(t, db, employee.ID, training2.ID, models.EnrollmentCompleted)
	createCompletion(t, db, employee.ID, training2.ID, enrollment2.ID, 20, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	second, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	require.True(t, awarded)
	assert.Equal(t, models.BadgeGold, second.BadgeType)
	assert.InDelta(t, 65.0, second.HoursCompleted, 0.001)

	// Same row upgraded, not a second badge.
	assert.Equal(t, first.ID, second.ID)
	var count int64
	require.NoError(t, db.Model(&models.Badge{}).
		Where("user_id = ? AND year_earned = ?", employee.ID, 2025).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCalculateBadge_RepeatCallIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	training := createTraining(t, db, admin, models.TrainingCompleted, 0)
	enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
	createCompletion(t, db, employee.ID, training.ID, enrollment.ID, 30, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	_, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	assert.True(t, awarded)

	// No new completions: the second run changes nothing and stays quiet.
	badge, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	require.NotNil(t, badge)
	assert.False(t, awarded)
	assert.Equal(t, models.BadgeBronze, badge.BadgeType)

	assert.EqualValues(t, 1, countNotifications(t, db, employee.ID, models.NotifyBadgeEarned))
}

func TestCalculateBadge_YearsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	for year, hours := range map[int]float64{2024: 85, 2025: 25} {
		training := createTraining(t, db, admin, models.TrainingCompleted, 0)
		enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
		createCompletion(t, db, employee.ID, training.ID, enrollment.ID, hours,
			time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC))
	}

	badge2024, _, err := services.CalculateBadge(db, employee.ID, 2024)
	require.NoError(t, err)
	require.NotNil(t, badge2024)
	assert.Equal(t, models.BadgePlatinum, badge2024.BadgeType)

	badge2025, _, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	require.NotNil(t, badge2025)
	assert.Equal(t, models.BadgeBronze, badge2025.BadgeType)

	assert.NotEqual(t, badge2024.ID, badge2025.ID)
}

func TestCalculateBadge_CompletionOutsideYearIgnored(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	training := createTraining(t, db, admin, models.TrainingCompleted, 0)
	enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)
	// Dec 31 of the previous year, just before the window.
	createCompletion(t, db, employee.ID, training.ID, enrollment.ID, 50,
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))

	badge, awarded, err := services.CalculateBadge(db, employee.ID, 2025)
	require.NoError(t, err)
	assert.Nil(t, badge)
	assert.False(t, awarded)
}
