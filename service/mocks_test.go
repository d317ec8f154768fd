package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"societydesk/models"
)

type MockComplaintStore struct {
	mock.Mock
}

func (m *MockComplaintStore) Create(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockComplaintStore) GetByID(complaintID int64) (*models.Complaint, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) GetByNumber(complaintNumber string) (*models.Complaint, error) {
	args := m.Called(complaintNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) ListByResident(residentID int64) ([]models.Complaint, error) {
	args := m.Called(residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) ListByWorker(workerID int64) ([]models.Complaint, error) {
	args := m.Called(workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) ListAll() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaintStore) UpdateFields(complaintID int64, fields map[string]interface{}) error {
	args := m.Called(complaintID, fields)
	return args.Error(0)
}

func (m *MockComplaintStore) Assign(complaintID, workerID int64, priority models.Priority) error {
	args := m.Called(complaintID, workerID, priority)
	return args.Error(0)
}

func (m *MockComplaintStore) MarkInProgress(complaintID, workerID int64) (bool, error) {
	args := m.Called(complaintID, workerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockComplaintStore) Delete(complaintID int64) error {
	args := m.Called(complaintID)
	return args.Error(0)
}

func (m *MockComplaintStore) RaisePriorityOfStaleSubmitted(maxAge time.Duration) (int64, error) {
	args := m.Called(maxAge)
	return args.Get(0).(int64), args.Error(1)
}

type MockResidentStore struct {
	mock.Mock
}

func (m *MockResidentStore) Create(r *models.Resident) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockResidentStore) GetByID(residentID int64) (*models.Resident, error) {
	args := m.Called(residentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resident), args.Error(1)
}

func (m *MockResidentStore) GetByPhone(phone string) (*models.Resident, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resident), args.Error(1)
}

type MockWorkerStore struct {
	mock.Mock
}

func (m *MockWorkerStore) Create(w *models.Worker) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *MockWorkerStore) GetByID(workerID int64) (*models.Worker, error) {
	args := m.Called(workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Worker), args.Error(1)
}

func (m *MockWorkerStore) GetByCode(workerCode string) (*models.Worker, error) {
	args := m.Called(workerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Worker), args.Error(1)
}

func (m *MockWorkerStore) GetByPhone(phone string) (*models.Worker, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Worker), args.Error(1)
}

func (m *MockWorkerStore) List() ([]models.Worker, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Worker), args.Error(1)
}

func (m *MockWorkerStore) CreditTokens(workerID int64, tokens int) error {
	args := m.Called(workerID, tokens)
	return args.Error(0)
}

type MockManagerStore struct {
	mock.Mock
}

func (m *MockManagerStore) Create(mgr *models.Manager) error {
	args := m.Called(mgr)
	return args.Error(0)
}

func (m *MockManagerStore) GetByID(managerID int64) (*models.Manager, error) {
	args := m.Called(managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manager), args.Error(1)
}

func (m *MockManagerStore) GetByPhone(phone string) (*models.Manager, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manager), args.Error(1)
}

type MockResolutionLogStore struct {
	mock.Mock
}

func (m *MockResolutionLogStore) Create(entry *models.ResolutionLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockResolutionLogStore) List() ([]models.ResolutionLog, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResolutionLog), args.Error(1)
}
