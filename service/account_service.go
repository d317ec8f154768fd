package service

import (
	"fmt"
	"log"

	"societydesk/models"
	"societydesk/utils"
)

// AccountService handles registration, login and directory lookups for the
// three account types.
type AccountService struct {
	residents ResidentStore
	workers   WorkerStore
	managers  ManagerStore

	jwtSecret     []byte
	tokenTTLHours int
}

// NewAccountService creates a new account service
func NewAccountService(
	residents ResidentStore,
	workers WorkerStore,
	managers ManagerStore,
	jwtSecret string,
	tokenTTLHours int,
) *AccountService {
	return &AccountService{
		residents:     residents,
		workers:       workers,
		managers:      managers,
		jwtSecret:     []byte(jwtSecret),
		tokenTTLHours: tokenTTLHours,
	}
}

// RegisterResident creates a resident account with a bcrypt password hash.
func (s *AccountService) RegisterResident(req *models.RegisterResidentRequest) (*models.Resident, error) {
	if req.Name == "" || req.Phone == "" || req.Password == "" || req.FlatNumber == "" || req.Address == "" {
		return nil, fmt.Errorf("%w: name, phone, flat_number, address and password are required", ErrValidation)
	}

	existing, err := s.residents.GetByPhone(req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing resident: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: phone %s", ErrConflict, req.Phone)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	resident := &models.Resident{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		FlatNumber:   req.FlatNumber,
		Address:      req.Address,
		PasswordHash: hash,
	}
	if err := s.residents.Create(resident); err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}
	log.Printf("[account] registered resident ID=%d flat=%s", resident.ResidentID, resident.FlatNumber)
	return resident, nil
}

// RegisterWorker creates a worker account. Both the phone and the external
// worker code must be unused.
func (s *AccountService) RegisterWorker(req *models.RegisterWorkerRequest) (*models.Worker, error) {
	if req.Name == "" || req.Phone == "" || req.Password == "" || req.WorkerCode == "" {
		return nil, fmt.Errorf("%w: name, phone, worker_code and password are required", ErrValidation)
	}

	if existing, err := s.workers.GetByPhone(req.Phone); err != nil {
		return nil, fmt.Errorf("failed to check existing worker: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: phone %s", ErrConflict, req.Phone)
	}
	if existing, err := s.workers.GetByCode(req.WorkerCode); err != nil {
		return nil, fmt.Errorf("failed to check existing worker code: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: worker code %s", ErrConflict, req.WorkerCode)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	worker := &models.Worker{
		Name:           req.Name,
		Phone:          req.Phone,
		WorkerCode:     req.WorkerCode,
		Specialization: req.Specialization,
		Rating:         4.0,
		PasswordHash:   hash,
	}
	if err := s.workers.Create(worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}
	log.Printf("[account] registered worker ID=%d code=%s", worker.WorkerID, worker.WorkerCode)
	return worker, nil
}

// RegisterManager creates a manager account.
func (s *AccountService) RegisterManager(req *models.RegisterManagerRequest) (*models.Manager, error) {
	if req.Name == "" || req.Phone == "" || req.Password == "" || req.ManagerCode == "" {
		return nil, fmt.Errorf("%w: name, phone, manager_code and password are required", ErrValidation)
	}

	if existing, err := s.managers.GetByPhone(req.Phone); err != nil {
		return nil, fmt.Errorf("failed to check existing manager: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: phone %s", ErrConflict, req.Phone)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	manager := &models.Manager{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ManagerCode:  req.ManagerCode,
		PasswordHash: hash,
	}
	if err := s.managers.Create(manager); err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}
	log.Printf("[account] registered manager ID=%d code=%s", manager.ManagerID, manager.ManagerCode)
	return manager, nil
}

// Login validates phone+password for the requested role and issues a
// signed credential. Unknown accounts and wrong passwords are
// indistinguishable to the caller.
func (s *AccountService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if req.Phone == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: phone and password are required", ErrValidation)
	}

	var (
		principal models.PrincipalInfo
		hash      string
	)
	switch role {
	case models.RoleResident:
		resident, err := s.residents.GetByPhone(req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to look up resident: %w", err)
		}
		if resident == nil {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
		}
		principal = models.PrincipalInfo{ID: resident.ResidentID, Name: resident.Name, Phone: resident.Phone, Role: string(role)}
		hash = resident.PasswordHash
	case models.RoleWorker:
		worker, err := s.workers.GetByPhone(req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to look up worker: %w", err)
		}
		if worker == nil {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
		}
		principal = models.PrincipalInfo{ID: worker.WorkerID, Name: worker.Name, Phone: worker.Phone, Role: string(role)}
		hash = worker.PasswordHash
	case models.RoleManager:
		manager, err := s.managers.GetByPhone(req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to look up manager: %w", err)
		}
		if manager == nil {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
		}
		principal = models.PrincipalInfo{ID: manager.ManagerID, Name: manager.Name, Phone: manager.Phone, Role: string(role)}
		hash = manager.PasswordHash
	}

	if err := utils.CheckPassword(req.Password, hash); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	token, err := utils.GenerateJWT(principal, s.jwtSecret, s.tokenTTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{Token: token, User: principal}, nil
}

// GetResident returns a resident by id.
func (s *AccountService) GetResident(residentID int64) (*models.Resident, error) {
	resident, err := s.residents.GetByID(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	if resident == nil {
		return nil, fmt.Errorf("%w: resident %d", ErrNotFound, residentID)
	}
	return resident, nil
}

// GetWorker returns a worker by id.
func (s *AccountService) GetWorker(workerID int64) (*models.Worker, error) {
	worker, err := s.workers.GetByID(workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	if worker == nil {
		return nil, fmt.Errorf("%w: worker %d", ErrNotFound, workerID)
	}
	return worker, nil
}

// GetManager returns a manager by id.
func (s *AccountService) GetManager(managerID int64) (*models.Manager, error) {
	manager, err := s.managers.GetByID(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	if manager == nil {
		return nil, fmt.Errorf("%w: manager %d", ErrNotFound, managerID)
	}
	return manager, nil
}

// ListWorkers returns every worker (manager's assignment picker).
func (s *AccountService) ListWorkers() ([]models.Worker, error) {
	workers, err := s.workers.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}
