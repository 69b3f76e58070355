package services_test

import (
	"testing"

	"ldportal/models"
	"ldportal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTraining_DraftMovesToPending(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	superAdmin := createUser(t, db, "super", models.RoleSuperAdmin)
	training := createTraining(t, db, creator, models.TrainingDraft, 0)

	updated, err := services.SubmitTraining(db, training.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, models.TrainingPendingApproval, updated.Status)

	// Every super admin gets a notification row.
	assert.EqualValues(t, 1, countNotifications(t, db, superAdmin.ID, models.NotifyTrainingSubmitted))
}

func TestSubmitTraining_OnlyFromDraft(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)

	for _, status := range []string{
		models.TrainingPendingApproval,
		models.TrainingPublished,
		models.TrainingRejected,
	} {
		training := createTraining(t, db, creator, status, 0)
		_, err := services.SubmitTraining(db, training.ID, creator)
		require.Error(t, err)
		assert.Equal(t, services.CodeInvalidTransition, services.ErrCode(err))
	}
}

func TestSubmitTraining_CreatorOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	other := createUser(t, db, "other", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingDraft, 0)

	_, err := services.SubmitTraining(db, training.ID, other)
	require.Error(t, err)
	assert.Equal(t, services.CodeForbidden, services.ErrCode(err))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	_, err = services.SubmitTraining(db, training.ID, admin)
	assert.NoError(t, err)
}

func TestApproveTraining_PublishesAndStampsApprover(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	superAdmin := createUser(t, db, "super", models.RoleSuperAdmin)
	training := createTraining(t, db, creator, models.TrainingPendingApproval, 0)

	updated, err := services.ApproveTraining(db, training.ID, superAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.TrainingPublished, updated.Status)
	require.NotNil(t, updated.ApprovedByID)
	assert.Equal(t, superAdmin.ID, *updated.ApprovedByID)
	assert.NotNil(t, updated.ApprovedAt)

	assert.EqualValues(t, 1, countNotifications(t, db, creator.ID, models.NotifyTrainingApproved))
}

func TestApproveTraining_SuperAdminOnly(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	training := createTraining(t, db, creator, models.TrainingPendingApproval, 0)

	_, err := services.ApproveTraining(db, training.ID, admin)
	require.Error(t, err)
	assert.Equal(t, services.CodeForbidden, services.ErrCode(err))

	// Status untouched after the failed approval.
	var reloaded models.Training
	require.NoError(t, db.First(&reloaded, training.ID).Error)
	assert.Equal(t, models.TrainingPendingApproval, reloaded.Status)
}

func TestRejectTraining_RequiresReason(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	superAdmin := createUser(t, db, "super", models.RoleSuperAdmin)
	training := createTraining(t, db, creator, models.TrainingPendingApproval, 0)

	_, err := services.RejectTraining(db, training.ID, superAdmin, "   ")
	require.Error(t, err)
	assert.Equal(t, services.CodeValidation, services.ErrCode(err))

	updated, err := services.RejectTraining(db, training.ID, superAdmin, "Outline is incomplete")
	require.NoError(t, err)
	assert.Equal(t, models.TrainingRejected, updated.Status)
	assert.Equal(t, "Outline is incomplete", updated.RejectionReason)
	assert.EqualValues(t, 1, countNotifications(t, db, creator.ID, models.NotifyTrainingRejected))
}

func TestRejectedTraining_CanBeResubmittedAfterEdit(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	superAdmin := createUser(t, db, "super", models.RoleSuperAdmin)
	training := createTraining(t, db, creator, models.TrainingDraft, 0)

	_, err := services.SubmitTraining(db, training.ID, creator)
	require.NoError(t, err)
	_, err = services.RejectTraining(db, training.ID, superAdmin, "Too short")
	require.NoError(t, err)

	// The creator may still edit a rejected training.
	var rejected models.Training
	require.NoError(t, db.First(&rejected, training.ID).Error)
	require.NoError(t, services.CanEditTraining(&rejected, creator))

	// Editing sends it back to DRAFT, from where it can be resubmitted.
	require.NoError(t, db.Model(&rejected).Updates(map[string]interface{}{
		"status":           models.TrainingDraft,
		"rejection_reason": "",
	}).Error)

	resubmitted, err := services.SubmitTraining(db, training.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, models.TrainingPendingApproval, resubmitted.Status)
}

func TestCanEditTraining_PublishedNeedsSuperAdmin(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	superAdmin := createUser(t, db, "super", models.RoleSuperAdmin)
	training := createTraining(t, db, creator, models.TrainingPublished, 0)

	err := services.CanEditTraining(training, creator)
	require.Error(t, err)
	assert.Equal(t, services.CodeForbidden, services.ErrCode(err))

	assert.NoError(t, services.CanEditTraining(training, superAdmin))
}
