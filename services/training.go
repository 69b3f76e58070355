package services

import (
	"fmt"
	"strings"
	"time"

	"ldportal/models"

	"gorm.io/gorm"
)

// SubmitTraining moves a DRAFT training to PENDING_APPROVAL. Only the
// training's creator or an admin may submit. Every Super Admin is notified.
func SubmitTraining(db *gorm.DB, trainingID uint, caller *models.User) (*models.Training, error) {
	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return nil, Errorf(CodeNotFound, "training %d not found", trainingID)
	}

	if training.CreatedByID != caller.ID && !caller.Role.IsAdmin() {
		return nil, Errorf(CodeForbidden, "user %d (%s) may not submit training %d: creator or Admin required", caller.ID, caller.Role, trainingID)
	}

	if training.Status != models.TrainingDraft {
		return nil, Errorf(CodeInvalidTransition, "cannot submit training %d: status is %s, not %s", trainingID, training.Status, models.TrainingDraft)
	}

	training.Status = models.TrainingPendingApproval
	if err := db.Save(&training).Error; err != nil {
		return nil, err
	}

	NotifyRole(db, models.RoleSuperAdmin, models.NotifyTrainingSubmitted,
		"Training Pending Approval",
		fmt.Sprintf("Training '%s' has been submitted for approval", training.Title),
		"/admin/approvals")

	return &training, nil
}

// ApproveTraining moves a PENDING_APPROVAL training straight to PUBLISHED.
// Super Admin only. The creator is notified.
func ApproveTraining(db *gorm.DB, trainingID uint, caller *models.User) (*models.Training, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, Errorf(CodeForbidden, "user %d (%s) may not approve training %d: Super Admin required", caller.ID, caller.Role, trainingID)
	}

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return nil, Errorf(CodeNotFound, "training %d not found", trainingID)
	}

	if training.Status != models.TrainingPendingApproval {
		return nil, Errorf(CodeInvalidTransition, "cannot approve training %d: status is %s, not %s", trainingID, training.Status, models.TrainingPendingApproval)
	}

	now := time.Now()
	training.Status = models.TrainingPublished
	training.ApprovedByID = &caller.ID
	training.ApprovedAt = &now
	training.RejectionReason = ""

	if err := db.Save(&training).Error; err != nil {
		return nil, err
	}

	Notify(db, training.CreatedByID, models.NotifyTrainingApproved,
		"Training Approved",
		fmt.Sprintf("Your training '%s' has been approved and published", training.Title),
		"/trainings")

	return &training, nil
}

// RejectTraining moves a PENDING_APPROVAL training to REJECTED with a
// required reason. Super Admin only. The creator is notified.
func RejectTraining(db *gorm.DB, trainingID uint, caller *models.User, reason string) (*models.Training, error) {
	if caller.Role != models.RoleSuperAdmin {
		return nil, Errorf(CodeForbidden, "user %d (%s) may not reject training %d: Super Admin required", caller.ID, caller.Role, trainingID)
	}

	if strings.TrimSpace(reason) == "" {
		return nil, Errorf(CodeValidation, "rejection reason is required for training %d", trainingID)
	}

	var training models.Training
	if err := db.Where("id = ? AND is_deleted = ?", trainingID, false).First(&training).Error; err != nil {
		return nil, Errorf(CodeNotFound, "training %d not found", trainingID)
	}

	if training.Status != models.TrainingPendingApproval {
		return nil, Errorf(CodeInvalidTransition, "cannot reject training %d: status is %s, not %s", trainingID, training.Status, models.TrainingPendingApproval)
	}

	training.Status = models.TrainingRejected
	training.RejectionReason = reason
	training.ApprovedByID = nil
	training.ApprovedAt = nil

	if err := db.Save(&training).Error; err != nil {
		return nil, err
	}

	Notify(db, training.CreatedByID, models.NotifyTrainingRejected,
		"Training Rejected",
		fmt.Sprintf("Your training '%s' was rejected. Reason: %s", training.Title, reason),
		"/trainings")

	return &training, nil
}

// CanEditTraining reports whether the caller may mutate the training in its
// current state. Rejected trainings are editable again by their creator;
// once published only a Super Admin may touch them.
func CanEditTraining(training *models.Training, caller *models.User) error {
	switch training.Status {
	case models.TrainingDraft, models.TrainingRejected:
		if training.CreatedByID != caller.ID && !caller.Role.IsAdmin() {
			return Errorf(CodeForbidden, "user %d (%s) may not edit training %d: creator or Admin required", caller.ID, caller.Role, training.ID)
		}
	default:
		if caller.Role != models.RoleSuperAdmin {
			return Errorf(CodeForbidden, "training %d is %s and may only be edited by a Super Admin", training.ID, training.Status)
		}
	}
	return nil
}
