package models

import "time"

// Resident represents a resident account (files complaints)
type Resident struct {
	ResidentID   int64     `db:"resident_id" json:"resident_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	FlatNumber   string    `db:"flat_number" json:"flat_number"`
	Address      string    `db:"address" json:"address"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Worker represents a maintenance worker account (resolves complaints,
// earns tokens)
type Worker struct {
	WorkerID       int64     `db:"worker_id" json:"worker_id"`
	Name           string    `db:"name" json:"name"`
	Phone          string    `db:"phone" json:"phone"`
	WorkerCode     string    `db:"worker_code" json:"worker_code"`
	Specialization string    `db:"specialization" json:"specialization"`
	Tokens         int       `db:"tokens" json:"tokens"`
	Rating         float64   `db:"rating" json:"rating"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Manager represents a society manager account (assigns complaints)
type Manager struct {
	ManagerID    int64     `db:"manager_id" json:"manager_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	ManagerCode  string    `db:"manager_code" json:"manager_code"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
