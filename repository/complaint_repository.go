package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"societydesk/models"
)

// ComplaintRepository handles database operations for complaints
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `
	complaint_id, complaint_number, created_by, title, description, category,
	picture, qr_code, status, priority, assigned_to, created_at, updated_at`

func scanComplaint(row interface{ Scan(...interface{}) error }) (*models.Complaint, error) {
	var c models.Complaint
	var updatedAt sql.NullTime
	err := row.Scan(
		&c.ComplaintID,
		&c.ComplaintNumber,
		&c.CreatedBy,
		&c.Title,
		&c.Description,
		&c.Category,
		&c.Picture,
		&c.QRCode,
		&c.Status,
		&c.Priority,
		&c.AssignedTo,
		&c.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	} else {
		c.UpdatedAt = c.CreatedAt
	}
	return &c, nil
}

// Create inserts a new complaint
func (r *ComplaintRepository) Create(complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (
			complaint_number, created_by, title, description, category,
			picture, qr_code, status, priority, assigned_to
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		complaint.ComplaintNumber,
		complaint.CreatedBy,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Picture,
		complaint.QRCode,
		complaint.Status,
		complaint.Priority,
		complaint.AssignedTo,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	complaintID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get complaint ID: %w", err)
	}
	complaint.ComplaintID = complaintID
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	return nil
}

// GetByID retrieves a complaint by its storage identifier
func (r *ComplaintRepository) GetByID(complaintID int64) (*models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints WHERE complaint_id = ?`
	complaint, err := scanComplaint(r.db.QueryRow(query, complaintID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return complaint, nil
}

// GetByNumber retrieves a complaint by its confirmation code
func (r *ComplaintRepository) GetByNumber(complaintNumber string) (*models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints WHERE complaint_number = ?`
	complaint, err := scanComplaint(r.db.QueryRow(query, complaintNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint by number: %w", err)
	}
	return complaint, nil
}

func (r *ComplaintRepository) list(where string, args ...interface{}) ([]models.Complaint, error) {
	query := `SELECT` + complaintColumns + ` FROM complaints ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *complaint)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}

// ListByResident retrieves all complaints filed by a resident
func (r *ComplaintRepository) ListByResident(residentID int64) ([]models.Complaint, error) {
	return r.list(`WHERE created_by = ?`, residentID)
}

// ListByWorker retrieves all complaints assigned to a worker
func (r *ComplaintRepository) ListByWorker(workerID int64) ([]models.Complaint, error) {
	return r.list(`WHERE assigned_to = ?`, workerID)
}

// ListAll retrieves every open complaint
func (r *ComplaintRepository) ListAll() ([]models.Complaint, error) {
	return r.list(``)
}

// UpdateFields applies a column→value map. Columns are fixed strings
// produced by the service-layer allow-list, never raw client input.
func (r *ComplaintRepository) UpdateFields(complaintID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	setClauses := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)
	for column, value := range fields {
		setClauses = append(setClauses, column+" = ?")
		args = append(args, value)
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, complaintID)

	query := `UPDATE complaints SET ` + strings.Join(setClauses, ", ") + ` WHERE complaint_id = ?`
	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}
	return nil
}

// Assign sets the worker and priority and moves the complaint to assigned
func (r *ComplaintRepository) Assign(complaintID, workerID int64, priority models.Priority) error {
	query := `
		UPDATE complaints
		SET assigned_to = ?,
			priority = ?,
			status = ?,
			updated_at = NOW()
		WHERE complaint_id = ?
	`
	if _, err := r.db.Exec(query, workerID, priority, models.StatusAssigned, complaintID); err != nil {
		return fmt.Errorf("failed to assign complaint: %w", err)
	}
	return nil
}

// MarkInProgress is the guarded accept transition: the WHERE clause
// re-checks status and assignee so concurrent accepts or a racing
// reassignment match zero rows instead of clobbering each other.
func (r *ComplaintRepository) MarkInProgress(complaintID, workerID int64) (bool, error) {
	query := `
		UPDATE complaints
		SET status = ?,
			updated_at = NOW()
		WHERE complaint_id = ? AND assigned_to = ? AND status = ?
	`
	result, err := r.db.Exec(query, models.StatusInProgress, complaintID, workerID, models.StatusAssigned)
	if err != nil {
		return false, fmt.Errorf("failed to mark complaint in progress: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a complaint row
func (r *ComplaintRepository) Delete(complaintID int64) error {
	if _, err := r.db.Exec(`DELETE FROM complaints WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	return nil
}

// RaisePriorityOfStaleSubmitted bumps complaints one priority step when
// they have sat submitted and unassigned longer than maxAge. Used by the
// escalation worker; never touches status or assignment.
func (r *ComplaintRepository) RaisePriorityOfStaleSubmitted(maxAge time.Duration) (int64, error) {
	query := `
		UPDATE complaints
		SET priority = CASE priority
				WHEN 'low' THEN 'medium'
				WHEN 'medium' THEN 'high'
				ELSE priority
			END
		WHERE status = ?
		  AND assigned_to IS NULL
		  AND priority != 'high'
		  AND created_at < NOW() - INTERVAL ? SECOND
	`
	result, err := r.db.Exec(query, models.StatusSubmitted, int64(maxAge.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("failed to raise stale complaint priority: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
