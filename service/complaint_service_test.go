package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"societydesk/models"
)

func newTestComplaintService() (*ComplaintService, *MockComplaintStore, *MockResidentStore, *MockWorkerStore, *MockResolutionLogStore) {
	complaints := new(MockComplaintStore)
	residents := new(MockResidentStore)
	workers := new(MockWorkerStore)
	resolutions := new(MockResolutionLogStore)
	svc := NewComplaintService(complaints, residents, workers, resolutions)
	return svc, complaints, residents, workers, resolutions
}

func submittedComplaint() *models.Complaint {
	return &models.Complaint{
		ComplaintID:     7,
		ComplaintNumber: "CMP-20260901-ab12cd34",
		CreatedBy:       1,
		Title:           "Lift stuck on floor 3",
		Description:     "Main lift has been stuck since morning",
		Category:        "electrical",
		Status:          models.StatusSubmitted,
		Priority:        models.PriorityMedium,
	}
}

func assignedComplaint(workerID int64) *models.Complaint {
	c := submittedComplaint()
	c.Status = models.StatusAssigned
	c.AssignedTo = sql.NullInt64{Int64: workerID, Valid: true}
	return c
}

func inProgressComplaint(workerID int64) *models.Complaint {
	c := assignedComplaint(workerID)
	c.Status = models.StatusInProgress
	return c
}

func TestGenerateComplaintNumberFormat(t *testing.T) {
	number := GenerateComplaintNumber()
	assert.Regexp(t, `^CMP-\d{8}-[0-9a-f]{8}$`, number)
	assert.NotEqual(t, number, GenerateComplaintNumber())
}

func TestCreateComplaint(t *testing.T) {
	svc, complaints, residents, _, _ := newTestComplaintService()

	residents.On("GetByID", int64(1)).Return(&models.Resident{ResidentID: 1, Name: "Asha"}, nil)
	complaints.On("Create", mock.AnythingOfType("*models.Complaint")).Return(nil)

	complaint, err := svc.CreateComplaint(1, &models.CreateComplaintRequest{
		Title:       "Lift stuck on floor 3",
		Description: "Main lift has been stuck since morning",
		Category:    "electrical",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, complaint.Status)
	assert.Equal(t, models.PriorityMedium, complaint.Priority)
	assert.Equal(t, int64(1), complaint.CreatedBy)
	assert.Regexp(t, `^CMP-`, complaint.ComplaintNumber)
	assert.True(t, complaint.QRCode.Valid, "confirmation code should be rendered as QR")
	assert.Contains(t, complaint.QRCode.String, "data:image/png;base64,")
	complaints.AssertExpectations(t)
}

func TestCreateComplaintMissingFields(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	_, err := svc.CreateComplaint(1, &models.CreateComplaintRequest{Title: "only a title"})
	assert.ErrorIs(t, err, ErrValidation)
	complaints.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateComplaintUnknownResident(t *testing.T) {
	svc, _, residents, _, _ := newTestComplaintService()
	residents.On("GetByID", int64(99)).Return(nil, nil)

	_, err := svc.CreateComplaint(99, &models.CreateComplaintRequest{
		Title: "t", Description: "d", Category: "c",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateComplaintInvalidPriority(t *testing.T) {
	svc, _, residents, _, _ := newTestComplaintService()
	residents.On("GetByID", int64(1)).Return(&models.Resident{ResidentID: 1}, nil)

	_, err := svc.CreateComplaint(1, &models.CreateComplaintRequest{
		Title: "t", Description: "d", Category: "c", Priority: strPtr("urgent"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetComplaintVisibility(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaint := assignedComplaint(5)
	complaints.On("GetByID", int64(7)).Return(complaint, nil)

	// manager sees everything
	got, err := svc.GetComplaint(42, models.RoleManager, 7)
	require.NoError(t, err)
	assert.Equal(t, complaint, got)

	// owner resident sees it
	_, err = svc.GetComplaint(1, models.RoleResident, 7)
	assert.NoError(t, err)

	// other residents do not
	_, err = svc.GetComplaint(2, models.RoleResident, 7)
	assert.ErrorIs(t, err, ErrForbidden)

	// assigned worker sees it
	_, err = svc.GetComplaint(5, models.RoleWorker, 7)
	assert.NoError(t, err)

	// other workers do not
	_, err = svc.GetComplaint(6, models.RoleWorker, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignComplaint(t *testing.T) {
	svc, complaints, _, workers, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil).Once()
	workers.On("GetByCode", "WRK-001").Return(&models.Worker{WorkerID: 5, WorkerCode: "WRK-001"}, nil)
	complaints.On("Assign", int64(7), int64(5), models.PriorityHigh).Return(nil)
	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil).Once()

	complaint, err := svc.AssignComplaint(7, "WRK-001", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, complaint.Status)
	assert.Equal(t, int64(5), complaint.AssignedTo.Int64)
	complaints.AssertExpectations(t)
}

func TestAssignComplaintDeletedDuringAssign(t *testing.T) {
	svc, complaints, _, workers, _ := newTestComplaintService()

	// complaint exists at first read but a concurrent delete wins before
	// the post-write reload
	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil).Once()
	workers.On("GetByCode", "WRK-001").Return(&models.Worker{WorkerID: 5, WorkerCode: "WRK-001"}, nil)
	complaints.On("Assign", int64(7), int64(5), models.PriorityHigh).Return(nil)
	complaints.On("GetByID", int64(7)).Return(nil, nil).Once()

	complaint, err := svc.AssignComplaint(7, "WRK-001", models.PriorityHigh)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, complaint)
}

func TestAssignComplaintUnknownWorker(t *testing.T) {
	svc, complaints, _, workers, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil)
	workers.On("GetByCode", "WRK-404").Return(nil, nil)

	_, err := svc.AssignComplaint(7, "WRK-404", models.PriorityHigh)
	assert.ErrorIs(t, err, ErrInvalidAssignment)
	complaints.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignComplaintAlreadyInProgress(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(inProgressComplaint(5), nil)

	_, err := svc.AssignComplaint(7, "WRK-001", models.PriorityLow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAcceptComplaint(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil).Once()
	complaints.On("MarkInProgress", int64(7), int64(5)).Return(true, nil)
	complaints.On("GetByID", int64(7)).Return(inProgressComplaint(5), nil).Once()

	complaint, err := svc.AcceptComplaint(5, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, complaint.Status)
}

func TestAcceptComplaintDeletedDuringAccept(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil).Once()
	complaints.On("MarkInProgress", int64(7), int64(5)).Return(true, nil)
	complaints.On("GetByID", int64(7)).Return(nil, nil).Once()

	complaint, err := svc.AcceptComplaint(5, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, complaint)
}

func TestAcceptComplaintForeignWorker(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)

	_, err := svc.AcceptComplaint(6, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	complaints.AssertNotCalled(t, "MarkInProgress", mock.Anything, mock.Anything)
}

func TestAcceptComplaintNotAssignedStatus(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(inProgressComplaint(5), nil)

	_, err := svc.AcceptComplaint(5, 7)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAcceptComplaintLostRace(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)
	complaints.On("MarkInProgress", int64(7), int64(5)).Return(false, nil)

	_, err := svc.AcceptComplaint(5, 7)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResolveComplaint(t *testing.T) {
	svc, complaints, _, workers, resolutions := newTestComplaintService()

	resolvedAt := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return resolvedAt }

	complaint := inProgressComplaint(5)
	complaint.UpdatedAt = resolvedAt.Add(-4 * time.Hour)

	complaints.On("GetByNumber", complaint.ComplaintNumber).Return(complaint, nil)
	workers.On("GetByID", int64(5)).Return(&models.Worker{WorkerID: 5, Tokens: 100}, nil)
	resolutions.On("Create", mock.AnythingOfType("*models.ResolutionLog")).Return(nil)
	workers.On("CreditTokens", int64(5), 500).Return(nil)
	complaints.On("Delete", int64(7)).Return(nil)

	resp, err := svc.ResolveComplaint(5, complaint.ComplaintNumber)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, complaint.ComplaintNumber, resp.ComplaintNumber)
	assert.Equal(t, 500, resp.TokensAwarded)
	assert.InDelta(t, 4.0, resp.ElapsedHours, 0.01)

	resolutions.AssertExpectations(t)
	workers.AssertExpectations(t)
	complaints.AssertExpectations(t)

	entry := resolutions.Calls[0].Arguments.Get(0).(*models.ResolutionLog)
	assert.Equal(t, int64(5), entry.WorkerID)
	assert.Equal(t, int64(1), entry.ResidentID)
	assert.Equal(t, 500, entry.TokensAwarded)
	assert.Equal(t, resolvedAt, entry.ResolvedAt)
}

func TestResolveComplaintSlowResolutionHitsFloor(t *testing.T) {
	svc, complaints, _, workers, resolutions := newTestComplaintService()

	resolvedAt := time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return resolvedAt }

	complaint := inProgressComplaint(5)
	complaint.UpdatedAt = resolvedAt.Add(-72 * time.Hour)

	complaints.On("GetByNumber", complaint.ComplaintNumber).Return(complaint, nil)
	workers.On("GetByID", int64(5)).Return(&models.Worker{WorkerID: 5}, nil)
	resolutions.On("Create", mock.AnythingOfType("*models.ResolutionLog")).Return(nil)
	workers.On("CreditTokens", int64(5), 10).Return(nil)
	complaints.On("Delete", int64(7)).Return(nil)

	resp, err := svc.ResolveComplaint(5, complaint.ComplaintNumber)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.TokensAwarded)
}

func TestResolveComplaintWrongCode(t *testing.T) {
	svc, complaints, _, workers, resolutions := newTestComplaintService()
	complaints.On("GetByNumber", "CMP-20260901-deadbeef").Return(nil, nil)

	_, err := svc.ResolveComplaint(5, "CMP-20260901-deadbeef")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// a failed scan must leave no trace
	resolutions.AssertNotCalled(t, "Create", mock.Anything)
	workers.AssertNotCalled(t, "CreditTokens", mock.Anything, mock.Anything)
	complaints.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestResolveComplaintForeignWorker(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaint := inProgressComplaint(5)
	complaints.On("GetByNumber", complaint.ComplaintNumber).Return(complaint, nil)

	_, err := svc.ResolveComplaint(6, complaint.ComplaintNumber)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResolveComplaintNotAccepted(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaint := assignedComplaint(5)
	complaints.On("GetByNumber", complaint.ComplaintNumber).Return(complaint, nil)

	_, err := svc.ResolveComplaint(5, complaint.ComplaintNumber)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateComplaintResidentEditsOwnSubmitted(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil)
	complaints.On("UpdateFields", int64(7), map[string]interface{}{"title": "Lift stuck again"}).Return(nil)

	_, err := svc.UpdateComplaint(1, models.RoleResident, 7, &models.UpdateComplaintRequest{
		Title: strPtr("Lift stuck again"),
	})
	require.NoError(t, err)
	complaints.AssertExpectations(t)
}

func TestUpdateComplaintDeletedDuringUpdate(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil).Once()
	complaints.On("UpdateFields", int64(7), map[string]interface{}{"title": "gone"}).Return(nil)
	complaints.On("GetByID", int64(7)).Return(nil, nil).Once()

	complaint, err := svc.UpdateComplaint(1, models.RoleResident, 7, &models.UpdateComplaintRequest{
		Title: strPtr("gone"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, complaint)
}

func TestUpdateComplaintResidentAfterAssignment(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)

	_, err := svc.UpdateComplaint(1, models.RoleResident, 7, &models.UpdateComplaintRequest{
		Title: strPtr("too late"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
	complaints.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestUpdateComplaintWorkerAcceptsViaStatus(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)
	complaints.On("UpdateFields", int64(7), map[string]interface{}{"status": "in-progress"}).Return(nil)

	_, err := svc.UpdateComplaint(5, models.RoleWorker, 7, &models.UpdateComplaintRequest{
		Status: strPtr("in-progress"),
	})
	require.NoError(t, err)
}

func TestUpdateComplaintWorkerCannotRewind(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(inProgressComplaint(5), nil)

	_, err := svc.UpdateComplaint(5, models.RoleWorker, 7, &models.UpdateComplaintRequest{
		Status: strPtr("submitted"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateComplaintManagerRewindClearsAssignment(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()

	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)
	complaints.On("UpdateFields", int64(7), map[string]interface{}{
		"status":      "submitted",
		"assigned_to": nil,
	}).Return(nil)

	_, err := svc.UpdateComplaint(42, models.RoleManager, 7, &models.UpdateComplaintRequest{
		Status: strPtr("submitted"),
	})
	require.NoError(t, err)
	complaints.AssertExpectations(t)
}

func TestUpdateComplaintManagerCannotAdvanceUnassigned(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(submittedComplaint(), nil)

	_, err := svc.UpdateComplaint(42, models.RoleManager, 7, &models.UpdateComplaintRequest{
		Status: strPtr("in-progress"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateComplaintTerminalStatusRejected(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(7)).Return(assignedComplaint(5), nil)

	_, err := svc.UpdateComplaint(42, models.RoleManager, 7, &models.UpdateComplaintRequest{
		Status: strPtr("resolved"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateComplaintNoSurvivingFields(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaint := assignedComplaint(5)
	complaints.On("GetByID", int64(7)).Return(complaint, nil)

	// a worker asking only for field edits ends up with an empty change set
	got, err := svc.UpdateComplaint(5, models.RoleWorker, 7, &models.UpdateComplaintRequest{
		Title: strPtr("ignored"),
	})
	require.NoError(t, err)
	assert.Equal(t, complaint, got)
	complaints.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
}

func TestDeleteComplaintNotFound(t *testing.T) {
	svc, complaints, _, _, _ := newTestComplaintService()
	complaints.On("GetByID", int64(404)).Return(nil, nil)

	err := svc.DeleteComplaint(404)
	assert.ErrorIs(t, err, ErrNotFound)
}
