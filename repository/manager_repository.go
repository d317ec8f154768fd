package repository

import (
	"database/sql"
	"fmt"

	"societydesk/models"
)

// ManagerRepository handles database operations for managers
type ManagerRepository struct {
	db *sql.DB
}

// NewManagerRepository creates a new manager repository
func NewManagerRepository(db *sql.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

const managerColumns = `manager_id, name, email, phone, manager_code, password_hash, created_at`

func scanManager(row interface{ Scan(...interface{}) error }) (*models.Manager, error) {
	var m models.Manager
	err := row.Scan(
		&m.ManagerID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.ManagerCode,
		&m.PasswordHash,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new manager account
func (r *ManagerRepository) Create(manager *models.Manager) error {
	query := `
		INSERT INTO managers (name, email, phone, manager_code, password_hash)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		manager.Name,
		manager.Email,
		manager.Phone,
		manager.ManagerCode,
		manager.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	managerID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get manager ID: %w", err)
	}
	manager.ManagerID = managerID
	return nil
}

// GetByID retrieves a manager by ID
func (r *ManagerRepository) GetByID(managerID int64) (*models.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE manager_id = ? LIMIT 1`
	manager, err := scanManager(r.db.QueryRow(query, managerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manager by ID: %w", err)
	}
	return manager, nil
}

// GetByPhone retrieves a manager by phone number
func (r *ManagerRepository) GetByPhone(phone string) (*models.Manager, error) {
	query := `SELECT ` + managerColumns + ` FROM managers WHERE phone = ? LIMIT 1`
	manager, err := scanManager(r.db.QueryRow(query, phone))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manager by phone: %w", err)
	}
	return manager, nil
}
