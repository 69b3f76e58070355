package trainingController

import (
	"time"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	"ldportal/services"
	"ldportal/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateTraining creates a new training in DRAFT
func CreateTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	reqData, ok := c.Locals("validatedTraining").(*struct {
		Title           string  `json:"title"`
		Description     string  `json:"description"`
		Category        string  `json:"category"`
		Type            string  `json:"type"`
		DurationMinutes int     `json:"duration_minutes"`
		MaxParticipants int     `json:"max_participants"`
		IsMandatory     bool    `json:"is_mandatory"`
		InstructorID    *uint   `json:"instructor_id"`
		StartDate       *string `json:"start_date"`
		EndDate         *string `json:"end_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	training := models.Training{
		Title:           reqData.Title,
		Description:     reqData.Description,
		Category:        reqData.Category,
		Type:            reqData.Type,
		DurationMinutes: reqData.DurationMinutes,
		MaxParticipants: reqData.MaxParticipants,
		IsMandatory:     reqData.IsMandatory,
		InstructorID:    reqData.InstructorID,
		Status:          models.TrainingDraft,
		CreatedByID:     caller.ID,
	}

	if reqData.StartDate != nil {
		if d, err := time.Parse("2006-01-02", *reqData.StartDate); err == nil {
			training.StartDate = &d
		}
	}
	if reqData.EndDate != nil {
		if d, err := time.Parse("2006-01-02", *reqData.EndDate); err == nil {
			training.EndDate = &d
		}
	}

	if err := database.Database.Db.Create(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Training created successfully!", training)
}

// UpdateTraining updates a draft or rejected training; editing a rejected
// training returns it to DRAFT.
func UpdateTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	var training models.Training
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if err := services.CanEditTraining(&training, caller); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	reqData, ok := c.Locals("validatedTrainingUpdate").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		Category        string `json:"category"`
		Type            string `json:"type"`
		DurationMinutes int    `json:"duration_minutes"`
		MaxParticipants int    `json:"max_participants"`
		IsMandatory     *bool  `json:"is_mandatory"`
		InstructorID    *uint  `json:"instructor_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		training.Title = reqData.Title
	}
	if reqData.Description != "" {
		training.Description = reqData.Description
	}
	if reqData.Category != "" {
		training.Category = reqData.Category
	}
	if reqData.Type != "" {
		training.Type = reqData.Type
	}
	if reqData.DurationMinutes > 0 {
		training.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.MaxParticipants > 0 {
		training.MaxParticipants = reqData.MaxParticipants
	}
	if reqData.IsMandatory != nil {
		training.IsMandatory = *reqData.IsMandatory
	}
	if reqData.InstructorID != nil {
		training.InstructorID = reqData.InstructorID
	}

	// A rejected training becomes editable draft again.
	if training.Status == models.TrainingRejected {
		training.Status = models.TrainingDraft
	}

	if err := database.Database.Db.Save(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update training!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training updated successfully!", training)
}

// DeleteTraining soft deletes a DRAFT training along with its sessions.
func DeleteTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	db := database.Database.Db

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if training.CreatedByID != caller.ID && !caller.Role.IsAdmin() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	// Cascade delete of sessions only exists while the training is a draft.
	if training.Status != models.TrainingDraft {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only DRAFT trainings can be deleted!", nil)
	}

	training.IsDeleted = true
	if err := db.Save(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete training!", nil)
	}
	db.Model(&models.TrainingSession{}).Where("training_id = ?", trainingID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training deleted successfully!", nil)
}

// GetTraining returns one training with its sessions and prerequisites.
func GetTraining(c *fiber.Ctx) error {
	trainingID := c.Locals("trainingID").(uint)

	db := database.Database.Db

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	var sessions []models.TrainingSession
	db.Where("training_id = ? AND is_deleted = ?", trainingID, false).Order("session_date asc").Find(&sessions)

	var prerequisites []models.TrainingPrerequisite
	db.Where("training_id = ?", trainingID).Find(&prerequisites)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training fetched successfully!", fiber.Map{
		"training":      training,
		"sessions":      sessions,
		"prerequisites": prerequisites,
	})
}

// ListTrainings lists trainings with optional filters. Non-admin callers
// only see published and later stages.
func ListTrainings(c *fiber.Ctx) error {
	caller := middleware.Caller(c)

	reqData, _ := c.Locals("validatedTrainingList").(*struct {
		Page     *int    `json:"page"`
		Limit    *int    `json:"limit"`
		Category *string `json:"category"`
		Status   *string `json:"status"`
	})

	page := 1
	limit := 20
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Training{}).Where("is_deleted = ?", false)

	if !caller.Role.IsAdmin() {
		db = db.Where("status IN ?", []string{models.TrainingPublished, models.TrainingOngoing, models.TrainingCompleted})
	}
	if reqData != nil && reqData.Category != nil && *reqData.Category != "" {
		db = db.Where("category = ?", *reqData.Category)
	}
	if reqData != nil && reqData.Status != nil && *reqData.Status != "" {
		db = db.Where("status = ?", *reqData.Status)
	}

	var total int64
	db.Count(&total)

	var trainings []models.Training
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainings fetched successfully!", fiber.Map{
		"trainings": trainings,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ListPendingTrainings lists trainings waiting for approval.
func ListPendingTrainings(c *fiber.Ctx) error {
	var trainings []models.Training
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = ?", models.TrainingPendingApproval, false).
		Order("updated_at asc").
		Find(&trainings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending trainings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending trainings fetched!", trainings)
}

// SubmitTraining submits a draft for approval
func SubmitTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	training, err := services.SubmitTraining(database.Database.Db, trainingID, caller)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training submitted for approval!", training)
}

// ApproveTraining approves and publishes a pending training
func ApproveTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	db := database.Database.Db

	training, err := services.ApproveTraining(db, trainingID, caller)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var creator models.User
	if err := db.Where("id = ?", training.CreatedByID).First(&creator).Error; err == nil {
		utils.SendTrainingApprovedEmail(creator.Email, creator.Name, training.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training approved and published!", training)
}

// RejectTraining rejects a pending training with a reason
func RejectTraining(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	reqData, ok := c.Locals("validatedReject").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	training, err := services.RejectTraining(db, trainingID, caller, reqData.Reason)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var creator models.User
	if err := db.Where("id = ?", training.CreatedByID).First(&creator).Error; err == nil {
		utils.SendTrainingRejectedEmail(creator.Email, creator.Name, training.Title, reqData.Reason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Training rejected!", training)
}

// AddPrerequisite declares a required prior completion for a training.
func AddPrerequisite(c *fiber.Ctx) error {
	caller := middleware.Caller(c)
	trainingID := c.Locals("trainingID").(uint)

	reqData, ok := c.Locals("validatedPrerequisite").(*struct {
		RequiredID uint `json:"required_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Training not found!", nil)
	}

	if err := services.CanEditTraining(&training, caller); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if reqData.RequiredID == trainingID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A training cannot be its own prerequisite!", nil)
	}

	var required models.Training
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RequiredID, false).First(&required).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Required training not found!", nil)
	}

	prereq := models.TrainingPrerequisite{TrainingID: trainingID, RequiredID: reqData.RequiredID}
	if err := db.Create(&prereq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Prerequisite already declared!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Prerequisite added!", prereq)
}
