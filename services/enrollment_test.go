package services_test

import (
	"fmt"
	"testing"
	"time"

	"ldportal/models"
	"ldportal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll_SelfEnrollmentInPublishedTraining(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 10)

	enrollment, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.Nil(t, enrollment.AssignedByID)

	var reloaded models.Training
	require.NoError(t, db.First(&reloaded, training.ID).Error)
	assert.Equal(t, 1, reloaded.EnrolledCount)

	assert.EqualValues(t, 1, countNotifications(t, db, employee.ID, models.NotifyEnrollmentConfirmed))
}

func TestEnroll_AssignmentStartsAssigned(t *testing.T) {
	db := newTestDB(t)
	manager := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, manager, models.TrainingPublished, 0)

	enrollment, err := services.Enroll(db, employee.ID, training.ID, manager)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentAssigned, enrollment.Status)
	require.NotNil(t, enrollment.AssignedByID)
	assert.Equal(t, manager.ID, *enrollment.AssignedByID)
	assert.NotNil(t, enrollment.AssignedAt)

	assert.EqualValues(t, 1, countNotifications(t, db, employee.ID, models.NotifyTrainingAssigned))
}

func TestEnroll_RejectsNonPublishedTraining(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)

	for _, status := range []string{models.TrainingDraft, models.TrainingPendingApproval, models.TrainingRejected} {
		training := createTraining(t, db, creator, status, 0)
		_, err := services.Enroll(db, employee.ID, training.ID, nil)
		require.Error(t, err)
		assert.Equal(t, services.CodeInvalidTransition, services.ErrCode(err))
	}
}

func TestEnroll_AssignmentAllowedIntoOngoingTraining(t *testing.T) {
	db := newTestDB(t)
	manager := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, manager, models.TrainingOngoing, 0)

	// Self-enrollment into a running cohort is not allowed.
	_, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.Error(t, err)

	// An assignment is.
	enrollment, err := services.Enroll(db, employee.ID, training.ID, manager)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentAssigned, enrollment.Status)
}

func TestEnroll_CapacityExceeded(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	training := createTraining(t, db, creator, models.TrainingPublished, 2)

	for i := 0; i < 2; i++ {
		u := createUser(t, db, fmt.Sprintf("emp%d", i), models.RoleEmployee)
		_, err := services.Enroll(db, u.ID, training.ID, nil)
		require.NoError(t, err)
	}

	late := createUser(t, db, "late", models.RoleEmployee)
	_, err := services.Enroll(db, late.ID, training.ID, nil)
	require.Error(t, err)
	assert.Equal(t, services.CodeCapacityExceeded, services.ErrCode(err))

	// The failed enroll must not leak an increment.
	var reloaded models.Training
	require.NoError(t, db.First(&reloaded, training.ID).Error)
	assert.Equal(t, 2, reloaded.EnrolledCount)
}

func TestEnroll_ZeroCapacityMeansUnlimited(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	training := createTraining(t, db, creator, models.TrainingPublished, 0)

	for i := 0; i < 5; i++ {
		u := createUser(t, db, fmt.Sprintf("emp%d", i), models.RoleEmployee)
		_, err := services.Enroll(db, u.ID, training.ID, nil)
		require.NoError(t, err)
	}
}

func TestEnroll_DuplicateActiveEnrollmentRejected(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 10)

	_, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)

	_, err = services.Enroll(db, employee.ID, training.ID, nil)
	require.Error(t, err)
	assert.Equal(t, services.CodeAlreadyEnrolled, services.ErrCode(err))

	// The rolled-back attempt leaves the counter untouched.
	var reloaded models.Training
	require.NoError(t, db.First(&reloaded, training.ID).Error)
	assert.Equal(t, 1, reloaded.EnrolledCount)
}

func TestEnroll_CancelledEnrollmentAllowsReEnroll(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 10)

	first, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)
	_, err = services.CancelEnrollment(db, first.ID, employee)
	require.NoError(t, err)

	second, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestEnroll_PrerequisiteNotMet(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	basics := createTraining(t, db, creator, models.TrainingPublished, 0)
	advanced := createTraining(t, db, creator, models.TrainingPublished, 0)
	require.NoError(t, db.Create(&models.TrainingPrerequisite{
		TrainingID: advanced.ID,
		RequiredID: basics.ID,
	}).Error)

	_, err := services.Enroll(db, employee.ID, advanced.ID, nil)
	require.Error(t, err)
	assert.Equal(t, services.CodePrerequisiteNotMet, services.ErrCode(err))

	// A completion of the prerequisite unblocks enrollment.
	enrollment := createEnrollment(t, db, employee.ID, basics.ID, models.EnrollmentCompleted)
	createCompletion(t, db, employee.ID, basics.ID, enrollment.ID, 2, time.Now())

	_, err = services.Enroll(db, employee.ID, advanced.ID, nil)
	assert.NoError(t, err)
}

func TestCancelEnrollment_OwnerCancelsAndCounterDrops(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 10)

	enrollment, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)

	cancelled, err := services.CancelEnrollment(db, enrollment.ID, employee)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCancelled, cancelled.Status)

	var reloaded models.Training
	require.NoError(t, db.First(&reloaded, training.ID).Error)
	assert.Equal(t, 0, reloaded.EnrolledCount)
}

func TestCancelEnrollment_OnlyOwnerOrAdmin(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	stranger := createUser(t, db, "stranger", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 0)

	enrollment, err := services.Enroll(db, employee.ID, training.ID, nil)
	require.NoError(t, err)

	_, err = services.CancelEnrollment(db, enrollment.ID, stranger)
	require.Error(t, err)
	assert.Equal(t, services.CodeForbidden, services.ErrCode(err))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	_, err = services.CancelEnrollment(db, enrollment.ID, admin)
	assert.NoError(t, err)
}

func TestCancelEnrollment_MandatoryAssignmentNeedsAdmin(t *testing.T) {
	db := newTestDB(t)
	manager := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, manager, models.TrainingPublished, 0)
	require.NoError(t, db.Model(training).Update("is_mandatory", true).Error)

	enrollment, err := services.Enroll(db, employee.ID, training.ID, manager)
	require.NoError(t, err)

	_, err = services.CancelEnrollment(db, enrollment.ID, employee)
	require.Error(t, err)
	assert.Equal(t, services.CodeCannotCancel, services.ErrCode(err))

	admin := createUser(t, db, "admin", models.RoleAdmin)
	_, err = services.CancelEnrollment(db, enrollment.ID, admin)
	assert.NoError(t, err)
}

func TestCancelEnrollment_CompletedCannotBeCancelled(t *testing.T) {
	db := newTestDB(t)
	creator := createUser(t, db, "manager", models.RoleManager)
	employee := createUser(t, db, "employee", models.RoleEmployee)
	training := createTraining(t, db, creator, models.TrainingPublished, 0)
	enrollment := createEnrollment(t, db, employee.ID, training.ID, models.EnrollmentCompleted)

	_, err := services.CancelEnrollment(db, enrollment.ID, employee)
	require.Error(t, err)
	assert.Equal(t, services.CodeCannotCancel, services.ErrCode(err))
}
