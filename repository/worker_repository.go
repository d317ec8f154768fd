package repository

import (
	"database/sql"
	"fmt"

	"societydesk/models"
)

// WorkerRepository handles database operations for workers
type WorkerRepository struct {
	db *sql.DB
}

// NewWorkerRepository creates a new worker repository
func NewWorkerRepository(db *sql.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

const workerColumns = `worker_id, name, phone, worker_code, specialization, tokens, rating, password_hash, created_at`

func scanWorker(row interface{ Scan(...interface{}) error }) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(
		&w.WorkerID,
		&w.Name,
		&w.Phone,
		&w.WorkerCode,
		&w.Specialization,
		&w.Tokens,
		&w.Rating,
		&w.PasswordHash,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a new worker account
func (r *WorkerRepository) Create(worker *models.Worker) error {
	query := `
		INSERT INTO workers (name, phone, worker_code, specialization, tokens, rating, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		worker.Name,
		worker.Phone,
		worker.WorkerCode,
		worker.Specialization,
		worker.Tokens,
		worker.Rating,
		worker.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	workerID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get worker ID: %w", err)
	}
	worker.WorkerID = workerID
	return nil
}

// GetByID retrieves a worker by ID
func (r *WorkerRepository) GetByID(workerID int64) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = ? LIMIT 1`
	worker, err := scanWorker(r.db.QueryRow(query, workerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by ID: %w", err)
	}
	return worker, nil
}

// GetByCode retrieves a worker by its external worker code
func (r *WorkerRepository) GetByCode(workerCode string) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_code = ? LIMIT 1`
	worker, err := scanWorker(r.db.QueryRow(query, workerCode))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by code: %w", err)
	}
	return worker, nil
}

// GetByPhone retrieves a worker by phone number
func (r *WorkerRepository) GetByPhone(phone string) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE phone = ? LIMIT 1`
	worker, err := scanWorker(r.db.QueryRow(query, phone))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worker by phone: %w", err)
	}
	return worker, nil
}

// List retrieves all workers
func (r *WorkerRepository) List() ([]models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []models.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, *worker)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return workers, nil
}

// CreditTokens adds tokens to the worker's cumulative balance (never
// replaces it)
func (r *WorkerRepository) CreditTokens(workerID int64, tokens int) error {
	query := `UPDATE workers SET tokens = tokens + ? WHERE worker_id = ?`
	if _, err := r.db.Exec(query, tokens, workerID); err != nil {
		return fmt.Errorf("failed to credit worker tokens: %w", err)
	}
	return nil
}
