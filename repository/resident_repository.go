package repository

import (
	"database/sql"
	"fmt"

	"societydesk/models"
)

// ResidentRepository handles database operations for residents
type ResidentRepository struct {
	db *sql.DB
}

// NewResidentRepository creates a new resident repository
func NewResidentRepository(db *sql.DB) *ResidentRepository {
	return &ResidentRepository{db: db}
}

const residentColumns = `resident_id, name, email, phone, flat_number, address, password_hash, created_at`

func scanResident(row interface{ Scan(...interface{}) error }) (*models.Resident, error) {
	var res models.Resident
	err := row.Scan(
		&res.ResidentID,
		&res.Name,
		&res.Email,
		&res.Phone,
		&res.FlatNumber,
		&res.Address,
		&res.PasswordHash,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new resident account
func (r *ResidentRepository) Create(resident *models.Resident) error {
	query := `
		INSERT INTO residents (name, email, phone, flat_number, address, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		resident.Name,
		resident.Email,
		resident.Phone,
		resident.FlatNumber,
		resident.Address,
		resident.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create resident: %w", err)
	}
	residentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get resident ID: %w", err)
	}
	resident.ResidentID = residentID
	return nil
}

// GetByID retrieves a resident by ID
func (r *ResidentRepository) GetByID(residentID int64) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE resident_id = ? LIMIT 1`
	resident, err := scanResident(r.db.QueryRow(query, residentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident by ID: %w", err)
	}
	return resident, nil
}

// GetByPhone retrieves a resident by phone number
func (r *ResidentRepository) GetByPhone(phone string) (*models.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE phone = ? LIMIT 1`
	resident, err := scanResident(r.db.QueryRow(query, phone))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident by phone: %w", err)
	}
	return resident, nil
}
