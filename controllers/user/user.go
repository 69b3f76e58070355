package userController

import (
	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MyTeam lists the caller's direct reports.
func MyTeam(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var team []models.User
	if err := database.Database.Db.
		Where("manager_id = ? AND is_deleted = ?", caller.ID, false).
		Order("name ASC").Find(&team).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch team!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Team fetched.", team)
}

// ListUsers lists active users. Admins only.
func ListUsers(c *fiber.Ctx) error {
	query := database.Database.Db.Where("is_deleted = ?", false)

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if dept := c.QueryInt("department_id"); dept > 0 {
		query = query.Where("department_id = ?", dept)
	}

	var users []models.User
	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched.", users)
}

// UpdateRole changes a user's role. Super admins only; callers cannot
// change their own role.
func UpdateRole(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	targetID := c.Locals("targetUserID").(uint)
	reqData := c.Locals("validatedRole").(*struct {
		Role string `json:"role"`
	})

	if caller.ID == targetID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot change your own role!", nil)
	}

	var target models.User
	if err := database.Database.Db.First(&target, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	target.Role = models.Role(reqData.Role)
	if err := database.Database.Db.Save(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated.", target)
}

// MyProfile returns the caller's profile, creating an empty one on first
// access.
func MyProfile(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	var profile models.Profile
	err := database.Database.Db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", caller.ID).First(&profile).Error

	if err == gorm.ErrRecordNotFound {
		profile = models.Profile{UserID: caller.ID}
		if err := database.Database.Db.Create(&profile).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create profile!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", profile)
}

// UpdateProfile replaces the caller's profile fields and skill list.
func UpdateProfile(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	reqData := c.Locals("validatedProfile").(*struct {
		JobTitle string `json:"job_title"`
		Bio      string `json:"bio"`
		Location string `json:"location"`
		Skills   []struct {
			Name        string `json:"name"`
			Proficiency string `json:"proficiency"`
		} `json:"skills"`
	})

	var profile models.Profile
	err := database.Database.Db.Where("user_id = ?", caller.ID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		profile = models.Profile{UserID: caller.ID}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile!", nil)
	}

	profile.JobTitle = reqData.JobTitle
	profile.Bio = reqData.Bio
	profile.Location = reqData.Location

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Skill{}).Error; err != nil {
			return err
		}
		for i, s := range reqData.Skills {
			skill := models.Skill{
				ProfileID:   profile.ID,
				Name:        s.Name,
				Proficiency: models.Proficiency(s.Proficiency),
				Position:    i,
			}
			if err := tx.Create(&skill).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	database.Database.Db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&profile, profile.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated.", profile)
}

// UserProfile returns another user's profile.
func UserProfile(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).
		First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var profile models.Profile
	if err := database.Database.Db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("user_id = ?", targetID).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Profile not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", profile)
}
