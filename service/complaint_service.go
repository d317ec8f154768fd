package service

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"societydesk/models"
	"societydesk/utils"
)

// ComplaintService owns the complaint state machine: who may trigger each
// transition, which fields each role may update, and the token reward
// posted on resolution.
type ComplaintService struct {
	complaints  ComplaintStore
	residents   ResidentStore
	workers     WorkerStore
	resolutions ResolutionLogStore

	now func() time.Time
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaints ComplaintStore,
	residents ResidentStore,
	workers WorkerStore,
	resolutions ResolutionLogStore,
) *ComplaintService {
	return &ComplaintService{
		complaints:  complaints,
		residents:   residents,
		workers:     workers,
		resolutions: resolutions,
		now:         time.Now,
	}
}

// GenerateComplaintNumber generates the unique human/QR-facing code.
// Format: CMP-YYYYMMDD-{uuid8}. Distinct from the storage identifier.
func GenerateComplaintNumber() string {
	datePrefix := time.Now().UTC().Format("20060102")
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("CMP-%s-%s", datePrefix, uniqueID)
}

// CreateComplaint files a new complaint for a resident. Status is forced
// to submitted and a confirmation code plus its QR rendering are attached.
func (s *ComplaintService) CreateComplaint(residentID int64, req *models.CreateComplaintRequest) (*models.Complaint, error) {
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: title, description and category are required", ErrValidation)
	}

	resident, err := s.residents.GetByID(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up resident: %w", err)
	}
	if resident == nil {
		return nil, fmt.Errorf("%w: resident %d", ErrNotFound, residentID)
	}

	priority := models.PriorityMedium
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		if !models.ValidPriority(p) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *req.Priority)
		}
		priority = p
	}

	complaintNumber := GenerateComplaintNumber()
	complaint := &models.Complaint{
		ComplaintNumber: complaintNumber,
		CreatedBy:       residentID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Status:          models.StatusSubmitted,
		Priority:        priority,
	}
	if req.PictureURL != nil && *req.PictureURL != "" {
		complaint.Picture = sql.NullString{String: *req.PictureURL, Valid: true}
	}

	// QR failure is not fatal: the confirmation code itself is the source
	// of truth, the image is convenience for the resident's screen.
	if dataURL, err := utils.QRCodeDataURL(complaintNumber); err == nil {
		complaint.QRCode = sql.NullString{String: dataURL, Valid: true}
	} else {
		log.Printf("[complaint] failed to render QR for %s: %v", complaintNumber, err)
	}

	if err := s.complaints.Create(complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	log.Printf("[complaint] created complaint ID=%d number=%s", complaint.ComplaintID, complaintNumber)
	return complaint, nil
}

// reload re-reads a complaint after a write. The row can vanish between
// the write and the read (a concurrent manager delete), so a missing row
// maps to ErrNotFound instead of a nil complaint.
func (s *ComplaintService) reload(complaintID int64) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}
	return complaint, nil
}

// GetComplaint returns a complaint visible to the caller: residents see
// their own, workers see their assignments, managers see everything.
func (s *ComplaintService) GetComplaint(actorID int64, role models.Role, complaintID int64) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}

	switch role {
	case models.RoleManager:
	case models.RoleResident:
		if complaint.CreatedBy != actorID {
			return nil, fmt.Errorf("%w: not the complaint owner", ErrForbidden)
		}
	case models.RoleWorker:
		if !complaint.AssignedTo.Valid || complaint.AssignedTo.Int64 != actorID {
			return nil, fmt.Errorf("%w: complaint not assigned to this worker", ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, role)
	}
	return complaint, nil
}

// ListResidentComplaints returns the complaints a resident has filed.
func (s *ComplaintService) ListResidentComplaints(residentID int64) ([]models.Complaint, error) {
	complaints, err := s.complaints.ListByResident(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resident complaints: %w", err)
	}
	return complaints, nil
}

// ListWorkerComplaints returns the complaints assigned to a worker.
func (s *ComplaintService) ListWorkerComplaints(workerID int64) ([]models.Complaint, error) {
	complaints, err := s.complaints.ListByWorker(workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worker complaints: %w", err)
	}
	return complaints, nil
}

// ListAllComplaints returns every open complaint (manager dashboard).
func (s *ComplaintService) ListAllComplaints() ([]models.Complaint, error) {
	complaints, err := s.complaints.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// AssignComplaint is the manager-only submitted→assigned transition. The
// target worker is addressed by its external worker code and must exist;
// otherwise the complaint is left unchanged.
func (s *ComplaintService) AssignComplaint(complaintID int64, workerCode string, priority models.Priority) (*models.Complaint, error) {
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}
	// Reassignment while still assigned is allowed; once the worker has
	// accepted, the assignment is locked in.
	if complaint.Status == models.StatusInProgress {
		return nil, fmt.Errorf("%w: complaint is already in progress", ErrValidation)
	}

	worker, err := s.workers.GetByCode(workerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}
	if worker == nil {
		return nil, fmt.Errorf("%w: no worker with code %q", ErrInvalidAssignment, workerCode)
	}

	if err := s.complaints.Assign(complaintID, worker.WorkerID, priority); err != nil {
		return nil, fmt.Errorf("failed to assign complaint: %w", err)
	}
	log.Printf("[complaint] assigned complaint ID=%d to worker %s (ID=%d) priority=%s",
		complaintID, workerCode, worker.WorkerID, priority)

	return s.reload(complaintID)
}

// AcceptComplaint is the assigned→in-progress transition, allowed only for
// the worker named in assigned_to.
func (s *ComplaintService) AcceptComplaint(workerID, complaintID int64) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}
	if !complaint.AssignedTo.Valid || complaint.AssignedTo.Int64 != workerID {
		return nil, fmt.Errorf("%w: complaint not assigned to this worker", ErrForbidden)
	}
	if complaint.Status != models.StatusAssigned {
		return nil, fmt.Errorf("%w: complaint is not awaiting acceptance", ErrValidation)
	}

	// Guarded update: the WHERE clause re-checks status and assignee so a
	// racing reassignment or duplicate accept matches zero rows.
	ok, err := s.complaints.MarkInProgress(complaintID, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to accept complaint: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: complaint is not awaiting acceptance", ErrValidation)
	}

	return s.reload(complaintID)
}

// ResolveComplaint completes the in-progress→resolved transition. The
// worker presents the exact confirmation code scanned from the resident's
// QR; on success the reward is credited, a resolution record is written,
// and the complaint row is deleted. A non-matching code has no side
// effects.
func (s *ComplaintService) ResolveComplaint(workerID int64, code string) (*models.ResolveComplaintResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: confirmation code is required", ErrValidation)
	}

	complaint, err := s.complaints.GetByNumber(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up complaint by code: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: code %q does not match any open complaint", ErrCodeMismatch, code)
	}
	if !complaint.AssignedTo.Valid || complaint.AssignedTo.Int64 != workerID {
		return nil, fmt.Errorf("%w: complaint not assigned to this worker", ErrForbidden)
	}
	if complaint.Status != models.StatusInProgress {
		return nil, fmt.Errorf("%w: complaint must be accepted before resolving", ErrForbidden)
	}

	worker, err := s.workers.GetByID(workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worker: %w", err)
	}
	if worker == nil {
		return nil, fmt.Errorf("%w: worker %d", ErrNotFound, workerID)
	}

	since := complaint.UpdatedAt
	if since.IsZero() {
		since = complaint.CreatedAt
	}
	elapsed := s.now().Sub(since)
	tokens := RewardTokens(elapsed)
	elapsedHours := math.Round(elapsed.Hours()*100) / 100

	// The resolution record is written first so the reward stays
	// explainable even though the complaint row is about to disappear.
	entry := &models.ResolutionLog{
		ComplaintNumber: complaint.ComplaintNumber,
		Title:           complaint.Title,
		ResidentID:      complaint.CreatedBy,
		WorkerID:        workerID,
		TokensAwarded:   tokens,
		ElapsedHours:    elapsedHours,
		ResolvedAt:      s.now(),
	}
	if err := s.resolutions.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to record resolution: %w", err)
	}

	if err := s.workers.CreditTokens(workerID, tokens); err != nil {
		return nil, fmt.Errorf("failed to credit worker tokens: %w", err)
	}

	if err := s.complaints.Delete(complaint.ComplaintID); err != nil {
		return nil, fmt.Errorf("failed to delete resolved complaint: %w", err)
	}
	log.Printf("[complaint] resolved %s after %.2fh, awarded %d tokens to worker ID=%d",
		complaint.ComplaintNumber, elapsedHours, tokens, workerID)

	return &models.ResolveComplaintResponse{
		Success:         true,
		ComplaintNumber: complaint.ComplaintNumber,
		ElapsedHours:    elapsedHours,
		TokensAwarded:   tokens,
	}, nil
}

// UpdateComplaint applies role-filtered field changes. Residents may edit
// their own complaints while still submitted; workers may only move their
// own assignment to in-progress; managers may update any field at any
// state. Fields outside the role's allow-list are silently dropped.
func (s *ComplaintService) UpdateComplaint(actorID int64, role models.Role, complaintID int64, req *models.UpdateComplaintRequest) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}

	switch role {
	case models.RoleResident:
		if complaint.CreatedBy != actorID {
			return nil, fmt.Errorf("%w: not the complaint owner", ErrForbidden)
		}
		if complaint.Status != models.StatusSubmitted {
			return nil, fmt.Errorf("%w: complaint can no longer be edited", ErrForbidden)
		}
	case models.RoleWorker:
		if !complaint.AssignedTo.Valid || complaint.AssignedTo.Int64 != actorID {
			return nil, fmt.Errorf("%w: complaint not assigned to this worker", ErrForbidden)
		}
	case models.RoleManager:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, role)
	}

	fields := filterFields(role, req)

	if p, ok := fields["priority"]; ok {
		if !models.ValidPriority(models.Priority(p.(string))) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, p)
		}
	}

	if raw, ok := fields["status"]; ok {
		newStatus := models.ComplaintStatus(raw.(string))
		switch newStatus {
		case models.StatusSubmitted, models.StatusAssigned, models.StatusInProgress:
		default:
			return nil, fmt.Errorf("%w: status %q cannot be set directly", ErrValidation, newStatus)
		}
		if role == models.RoleWorker {
			// The only status a worker may reach for is the accept
			// transition on its own assignment.
			if newStatus != models.StatusInProgress || !isValidStatusTransition(complaint.Status, newStatus) {
				return nil, fmt.Errorf("%w: workers may only move an assigned complaint to in-progress", ErrForbidden)
			}
		} else {
			// Manager override. Keep the assignment invariant: past
			// submitted needs an assignee; back to submitted clears it.
			if newStatus != models.StatusSubmitted && !complaint.AssignedTo.Valid {
				return nil, fmt.Errorf("%w: cannot set status %q on an unassigned complaint", ErrValidation, newStatus)
			}
			if newStatus == models.StatusSubmitted {
				fields["assigned_to"] = nil
			}
		}
	}

	if len(fields) == 0 {
		return complaint, nil
	}

	if err := s.complaints.UpdateFields(complaintID, fields); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return s.reload(complaintID)
}

// DeleteComplaint removes a complaint unconditionally. Reached only
// through the manager-gated route.
func (s *ComplaintService) DeleteComplaint(complaintID int64) error {
	complaint, err := s.complaints.GetByID(complaintID)
	if err != nil {
		return fmt.Errorf("failed to get complaint: %w", err)
	}
	if complaint == nil {
		return fmt.Errorf("%w: complaint %d", ErrNotFound, complaintID)
	}
	if err := s.complaints.Delete(complaintID); err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	log.Printf("[complaint] deleted complaint ID=%d number=%s", complaintID, complaint.ComplaintNumber)
	return nil
}

// ListResolutions returns the resolution audit records (manager view).
func (s *ComplaintService) ListResolutions() ([]models.ResolutionLog, error) {
	entries, err := s.resolutions.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	return entries, nil
}
