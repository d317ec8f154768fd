package repository

import (
	"database/sql"
	"fmt"

	"societydesk/models"
)

// ResolutionLogRepository handles the immutable resolution records that
// survive complaint deletion
type ResolutionLogRepository struct {
	db *sql.DB
}

// NewResolutionLogRepository creates a new resolution log repository
func NewResolutionLogRepository(db *sql.DB) *ResolutionLogRepository {
	return &ResolutionLogRepository{db: db}
}

const resolutionLogColumns = `log_id, complaint_number, title, resident_id, worker_id, tokens_awarded, elapsed_hours, resolved_at`

// Create inserts a resolution record (immutable, no update path)
func (r *ResolutionLogRepository) Create(entry *models.ResolutionLog) error {
	query := `
		INSERT INTO resolution_log (
			complaint_number, title, resident_id, worker_id,
			tokens_awarded, elapsed_hours, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		entry.ComplaintNumber,
		entry.Title,
		entry.ResidentID,
		entry.WorkerID,
		entry.TokensAwarded,
		entry.ElapsedHours,
		entry.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resolution log entry: %w", err)
	}
	logID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get resolution log ID: %w", err)
	}
	entry.LogID = logID
	return nil
}

// List retrieves all resolution records, newest first
func (r *ResolutionLogRepository) List() ([]models.ResolutionLog, error) {
	query := `SELECT ` + resolutionLogColumns + ` FROM resolution_log ORDER BY resolved_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolution log: %w", err)
	}
	defer rows.Close()

	var entries []models.ResolutionLog
	for rows.Next() {
		var e models.ResolutionLog
		err := rows.Scan(
			&e.LogID,
			&e.ComplaintNumber,
			&e.Title,
			&e.ResidentID,
			&e.WorkerID,
			&e.TokensAwarded,
			&e.ElapsedHours,
			&e.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resolution log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resolution log: %w", err)
	}
	return entries, nil
}
