package models

import (
	"database/sql"
	"time"
)

// ComplaintStatus represents the possible statuses of a complaint
type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "submitted"
	StatusAssigned   ComplaintStatus = "assigned"
	StatusInProgress ComplaintStatus = "in-progress"
	// Resolved and rejected are terminal: the complaint row is removed, so
	// neither value is ever observed on a stored complaint.
	StatusResolved ComplaintStatus = "resolved"
	StatusRejected ComplaintStatus = "rejected"
)

// Priority represents complaint priority levels
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Role identifies which kind of account performed an action
type Role string

const (
	RoleResident Role = "resident"
	RoleWorker   Role = "worker"
	RoleManager  Role = "manager"
)

// ValidRole reports whether r is one of the three account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleResident, RoleWorker, RoleManager:
		return true
	}
	return false
}

// Complaint represents a complaint entity
type Complaint struct {
	ComplaintID     int64           `db:"complaint_id" json:"complaint_id"`
	ComplaintNumber string          `db:"complaint_number" json:"complaint_number"`
	CreatedBy       int64           `db:"created_by" json:"created_by"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	Category        string          `db:"category" json:"category"`
	Picture         sql.NullString  `db:"picture" json:"-"`
	QRCode          sql.NullString  `db:"qr_code" json:"-"`
	Status          ComplaintStatus `db:"status" json:"status"`
	Priority        Priority        `db:"priority" json:"priority"`
	AssignedTo      sql.NullInt64   `db:"assigned_to" json:"-"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// ResolutionLog is the immutable record written when a complaint is
// resolved, just before the complaint row itself is deleted.
type ResolutionLog struct {
	LogID           int64     `db:"log_id" json:"log_id"`
	ComplaintNumber string    `db:"complaint_number" json:"complaint_number"`
	Title           string    `db:"title" json:"title"`
	ResidentID      int64     `db:"resident_id" json:"resident_id"`
	WorkerID        int64     `db:"worker_id" json:"worker_id"`
	TokensAwarded   int       `db:"tokens_awarded" json:"tokens_awarded"`
	ElapsedHours    float64   `db:"elapsed_hours" json:"elapsed_hours"`
	ResolvedAt      time.Time `db:"resolved_at" json:"resolved_at"`
}
