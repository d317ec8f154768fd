package service

import (
	"time"

	"societydesk/models"
)

// Store interfaces decouple the lifecycle engine from MySQL; the
// repository package provides the production implementations. Lookups
// return (nil, nil) when the row does not exist.

// ComplaintStore persists complaints.
type ComplaintStore interface {
	Create(c *models.Complaint) error
	GetByID(complaintID int64) (*models.Complaint, error)
	GetByNumber(complaintNumber string) (*models.Complaint, error)
	ListByResident(residentID int64) ([]models.Complaint, error)
	ListByWorker(workerID int64) ([]models.Complaint, error)
	ListAll() ([]models.Complaint, error)
	// UpdateFields applies a column→value map produced by the role
	// allow-list filter. A nil value clears the column.
	UpdateFields(complaintID int64, fields map[string]interface{}) error
	// Assign sets assigned_to and priority and moves status to assigned.
	Assign(complaintID, workerID int64, priority models.Priority) error
	// MarkInProgress moves status from assigned to in-progress for the
	// given assignee only. Returns false when the guarded update matched
	// no row (raced or already accepted).
	MarkInProgress(complaintID, workerID int64) (bool, error)
	Delete(complaintID int64) error
	// RaisePriorityOfStaleSubmitted bumps still-unassigned complaints one
	// priority step after they have sat submitted longer than maxAge.
	RaisePriorityOfStaleSubmitted(maxAge time.Duration) (int64, error)
}

// ResidentStore persists resident accounts.
type ResidentStore interface {
	Create(r *models.Resident) error
	GetByID(residentID int64) (*models.Resident, error)
	GetByPhone(phone string) (*models.Resident, error)
}

// WorkerStore persists worker accounts and their token balances.
type WorkerStore interface {
	Create(w *models.Worker) error
	GetByID(workerID int64) (*models.Worker, error)
	GetByCode(workerCode string) (*models.Worker, error)
	GetByPhone(phone string) (*models.Worker, error)
	List() ([]models.Worker, error)
	// CreditTokens adds tokens to the worker's cumulative balance.
	CreditTokens(workerID int64, tokens int) error
}

// ManagerStore persists manager accounts.
type ManagerStore interface {
	Create(m *models.Manager) error
	GetByID(managerID int64) (*models.Manager, error)
	GetByPhone(phone string) (*models.Manager, error)
}

// ResolutionLogStore persists the immutable resolution records that
// survive complaint deletion.
type ResolutionLogStore interface {
	Create(entry *models.ResolutionLog) error
	List() ([]models.ResolutionLog, error)
}
