package utils

import (
	"fmt"
	"log"
	"time"

	"ldportal/database"
	"ldportal/models"
	"ldportal/services"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

func logScheduler(msg string) {
	log.Println("[SCHEDULER] " + msg)
}

// InitializePortalSchedulers starts the daily and yearly background jobs.
func InitializePortalSchedulers() *cron.Cron {
	logScheduler("Initializing portal schedulers...")

	c := cron.New()

	// Daily at 9 AM: remind enrollees of tomorrow's sessions, roll
	// training statuses forward and sweep finished trainings for
	// completions.
	c.AddFunc("0 9 * * *", func() {
		logScheduler("Running daily jobs...")
		SendSessionReminders()
		UpdateTrainingStatuses()
		ProcessFinishedTrainings()
	})

	// Jan 1 at midnight: award badges for the year that just ended.
	c.AddFunc("0 0 1 1 *", func() {
		logScheduler("Running yearly badge sweep...")
		AwardAnnualBadges(time.Now().Year() - 1)
	})

	c.Start()
	logScheduler("Portal schedulers started - daily at 9 AM, badge sweep on Jan 1")
	return c
}

// SendSessionReminders notifies every active enrollee of sessions
// happening tomorrow.
func SendSessionReminders() {
	db := database.Database.Db
	tomorrow := now.With(time.Now().AddDate(0, 0, 1))

	var sessions []models.TrainingSession
	if err := db.Where("session_date BETWEEN ? AND ? AND is_deleted = ?",
		tomorrow.BeginningOfDay(), tomorrow.EndOfDay(), false).
		Find(&sessions).Error; err != nil {
		logScheduler("Error fetching tomorrow's sessions: " + err.Error())
		return
	}

	logScheduler(fmt.Sprintf("Found %d sessions scheduled for tomorrow", len(sessions)))

	for _, session := range sessions {
		var training models.Training
		if err := db.First(&training, session.TrainingID).Error; err != nil {
			continue
		}

		var enrollments []models.Enrollment
		if err := db.Where("training_id = ? AND status IN ?", session.TrainingID,
			[]string{models.EnrollmentEnrolled, models.EnrollmentAssigned, models.EnrollmentInProgress}).
			Find(&enrollments).Error; err != nil {
			logScheduler(fmt.Sprintf("Error fetching enrollments for training %d: %v", session.TrainingID, err))
			continue
		}

		for _, enrollment := range enrollments {
			services.Notify(db, enrollment.UserID, models.NotifySessionReminder,
				"Session Reminder: "+training.Title,
				fmt.Sprintf("You have a session tomorrow at %s (%s).", session.StartTime, session.Location),
				fmt.Sprintf("/training/%d", training.ID))

			var user models.User
			if err := db.First(&user, enrollment.UserID).Error; err == nil {
				SendSessionReminderEmail(user.Email, user.Name, training.Title,
					session.SessionDate, session.StartTime, session.Location)
			}
		}
	}
}

// UpdateTrainingStatuses rolls published trainings into ONGOING once
// their start date passes and into COMPLETED after their end date.
func UpdateTrainingStatuses() {
	db := database.Database.Db
	today := time.Now()

	started := db.Model(&models.Training{}).
		Where("status = ? AND start_date <= ? AND is_deleted = ?", models.TrainingPublished, today, false).
		Update("status", models.TrainingOngoing)
	if started.Error != nil {
		logScheduler("Error starting trainings: " + started.Error.Error())
	} else if started.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Moved %d trainings to ONGOING", started.RowsAffected))
	}

	finished := db.Model(&models.Training{}).
		Where("status = ? AND end_date < ? AND is_deleted = ?", models.TrainingOngoing, today, false).
		Update("status", models.TrainingCompleted)
	if finished.Error != nil {
		logScheduler("Error completing trainings: " + finished.Error.Error())
	} else if finished.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Moved %d trainings to COMPLETED", finished.RowsAffected))
	}
}

// ProcessFinishedTrainings evaluates completion for every open enrollment
// of trainings that have ended. Enrollees below the attendance threshold
// are left untouched for manual follow-up.
func ProcessFinishedTrainings() {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Joins("JOIN trainings ON trainings.id = enrollments.training_id").
		Where("enrollments.status IN ?", []string{models.EnrollmentEnrolled, models.EnrollmentAssigned, models.EnrollmentInProgress}).
		Where("trainings.status = ?", models.TrainingCompleted).
		Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching open enrollments: " + err.Error())
		return
	}

	completed := 0
	for _, enrollment := range enrollments {
		completion, err := services.CalculateCompletion(db, enrollment.ID)
		if err != nil {
			continue
		}
		completed++

		var user models.User
		var training models.Training
		if db.First(&user, completion.UserID).Error == nil &&
			db.First(&training, completion.TrainingID).Error == nil {
			SendCompletionEmail(user.Email, user.Name, training.Title, completion.LearningHours)
		}
	}

	if len(enrollments) > 0 {
		logScheduler(fmt.Sprintf("Completion sweep: %d of %d open enrollments completed", completed, len(enrollments)))
	}
}

// AwardAnnualBadges evaluates the badge of every user with completions in
// the given year.
func AwardAnnualBadges(year int) {
	db := database.Database.Db
	yearStart := now.With(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)).BeginningOfYear()
	yearEnd := yearStart.AddDate(1, 0, 0)

	var userIDs []uint
	if err := db.Model(&models.TrainingCompletion{}).
		Where("completed_at >= ? AND completed_at < ?", yearStart, yearEnd).
		Distinct("user_id").Pluck("user_id", &userIDs).Error; err != nil {
		logScheduler("Error fetching users for badge sweep: " + err.Error())
		return
	}

	logScheduler(fmt.Sprintf("Badge sweep for %d: evaluating %d users", year, len(userIDs)))

	for _, userID := range userIDs {
		badge, awarded, err := services.CalculateBadge(db, userID, year)
		if err != nil {
			logScheduler(fmt.Sprintf("Error awarding badge to user %d: %v", userID, err))
			continue
		}
		if badge == nil || !awarded {
			continue
		}

		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			SendBadgeEmail(user.Email, user.Name, badge.BadgeType, badge.YearEarned, badge.HoursCompleted)
		}
	}
}

// SendSessionReminderEmail reminds an enrollee of an upcoming session.
func SendSessionReminderEmail(email, name, trainingTitle string, date time.Time, startTime, location string) {
	subject := "Session Reminder: " + trainingTitle
	where := location
	if where == "" {
		where = "online"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that your training <strong>%s</strong> has a session tomorrow.</p>
		<div class="info-box">
			<strong>Date:</strong> %s<br>
			<strong>Time:</strong> %s<br>
			<strong>Location:</strong> %s
		</div>
	`, name, trainingTitle, date.Format("January 2, 2006"), startTime, where)

	go SendEmail([]string{email}, subject, getEmailTemplate("Session Reminder", body))
}
