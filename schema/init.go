// Package schema: safe database initialization — create only missing tables, never drop or overwrite.

package schema

import (
	"database/sql"
	"log"
)

const (
	tableResidents     = "residents"
	tableWorkers       = "workers"
	tableManagers      = "managers"
	tableComplaints    = "complaints"
	tableResolutionLog = "resolution_log"
)

// InitializeDatabase ensures core tables exist. Checks INFORMATION_SCHEMA.TABLES; creates only
// missing tables in order: residents → workers → managers → complaints → resolution_log.
// Does not drop or recreate tables; does not remove data.
func InitializeDatabase(db *sql.DB) {
	ensureTable(db, tableResidents, createResidentsSQL)
	ensureTable(db, tableWorkers, createWorkersSQL)
	ensureTable(db, tableManagers, createManagersSQL)
	ensureTable(db, tableComplaints, createComplaintsSQL)
	ensureTable(db, tableResolutionLog, createResolutionLogSQL)
}

func ensureTable(db *sql.DB, table, createSQL string) {
	if exists, err := tableExists(db, table); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", table, err)
	} else if exists {
		log.Printf("[SCHEMA] %s table exists", table)
		return
	}
	if _, err := db.Exec(createSQL); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table %s: %v", table, err)
	}
	log.Printf("[SCHEMA] created %s table", table)
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const createResidentsSQL = `
CREATE TABLE IF NOT EXISTS residents (
    resident_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NULL,
    phone VARCHAR(15) UNIQUE NOT NULL,
    flat_number VARCHAR(50) NOT NULL,
    address VARCHAR(500) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_residents_phone (phone)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createWorkersSQL = `
CREATE TABLE IF NOT EXISTS workers (
    worker_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) NOT NULL,
    phone VARCHAR(15) UNIQUE NOT NULL,
    worker_code VARCHAR(50) UNIQUE NOT NULL,
    specialization VARCHAR(100) NULL,
    tokens INT NOT NULL DEFAULT 0,
    rating DECIMAL(3, 2) NOT NULL DEFAULT 4.00,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_workers_phone (phone),
    INDEX idx_workers_code (worker_code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createManagersSQL = `
CREATE TABLE IF NOT EXISTS managers (
    manager_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NULL,
    phone VARCHAR(15) UNIQUE NOT NULL,
    manager_code VARCHAR(50) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_managers_phone (phone)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

// Only live states appear in complaints: resolved and rejected complaints
// leave the table, resolutions survive in resolution_log.
const createComplaintsSQL = `
CREATE TABLE IF NOT EXISTS complaints (
    complaint_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_number VARCHAR(50) UNIQUE NOT NULL COMMENT 'Public-facing confirmation code',
    created_by BIGINT NOT NULL COMMENT 'Filing resident',
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL,
    category VARCHAR(100) NOT NULL,
    picture VARCHAR(1000) NULL COMMENT 'Optional photo URL',
    qr_code MEDIUMTEXT NULL COMMENT 'Confirmation code rendered as a PNG data URL',
    status ENUM('submitted', 'assigned', 'in-progress') NOT NULL DEFAULT 'submitted',
    priority ENUM('low', 'medium', 'high') NOT NULL DEFAULT 'medium',
    assigned_to BIGINT NULL COMMENT 'Currently assigned worker',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    FOREIGN KEY (created_by) REFERENCES residents(resident_id) ON DELETE RESTRICT,
    FOREIGN KEY (assigned_to) REFERENCES workers(worker_id) ON DELETE SET NULL,
    INDEX idx_complaints_number (complaint_number),
    INDEX idx_complaints_created_by (created_by),
    INDEX idx_complaints_assigned_to (assigned_to),
    INDEX idx_complaints_status (status),
    INDEX idx_complaints_status_created (status, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

const createResolutionLogSQL = `
CREATE TABLE IF NOT EXISTS resolution_log (
    log_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_number VARCHAR(50) NOT NULL,
    title VARCHAR(500) NOT NULL,
    resident_id BIGINT NOT NULL,
    worker_id BIGINT NOT NULL,
    tokens_awarded INT NOT NULL,
    elapsed_hours DECIMAL(10, 2) NOT NULL,
    resolved_at TIMESTAMP NOT NULL,
    INDEX idx_resolution_worker (worker_id),
    INDEX idx_resolution_resident (resident_id),
    INDEX idx_resolution_resolved_at (resolved_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
