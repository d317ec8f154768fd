package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"societydesk/middleware"
	"societydesk/models"
	"societydesk/service"
)

// ComplaintHandler handles all complaint lifecycle endpoints
type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaints *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

func complaintIDFromRequest(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}

// Create handles POST /api/v1/complaints (resident only)
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}

	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	complaint, err := h.complaints.CreateComplaint(principal.ID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, models.NewComplaintResponse(complaint))
}

// List handles GET /api/v1/complaints. The slice returned depends on who
// is asking: residents get their own filings, workers their assignments,
// managers the full open set.
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}

	var complaints []models.Complaint
	switch models.Role(principal.Role) {
	case models.RoleResident:
		complaints, err = h.complaints.ListResidentComplaints(principal.ID)
	case models.RoleWorker:
		complaints, err = h.complaints.ListWorkerComplaints(principal.ID)
	case models.RoleManager:
		complaints, err = h.complaints.ListAllComplaints()
	default:
		respondWithError(w, http.StatusForbidden, "Forbidden", "Unknown role")
		return
	}
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaintResponses(complaints))
}

// Get handles GET /api/v1/complaints/{id}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}
	id, err := complaintIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Complaint ID must be a number")
		return
	}

	complaint, err := h.complaints.GetComplaint(principal.ID, models.Role(principal.Role), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.NewComplaintResponse(complaint))
}

// Update handles PATCH /api/v1/complaints/{id}
func (h *ComplaintHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}
	id, err := complaintIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Complaint ID must be a number")
		return
	}

	var req models.UpdateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	complaint, err := h.complaints.UpdateComplaint(principal.ID, models.Role(principal.Role), id, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.NewComplaintResponse(complaint))
}

// Assign handles POST /api/v1/complaints/{id}/assign (manager only)
func (h *ComplaintHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Complaint ID must be a number")
		return
	}

	var req models.AssignComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	complaint, err := h.complaints.AssignComplaint(id, req.WorkerCode, models.Priority(req.Priority))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.NewComplaintResponse(complaint))
}

// Accept handles POST /api/v1/complaints/{id}/accept (worker only)
func (h *ComplaintHandler) Accept(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}
	id, err := complaintIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Complaint ID must be a number")
		return
	}

	complaint, err := h.complaints.AcceptComplaint(principal.ID, id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, models.NewComplaintResponse(complaint))
}

// Resolve handles POST /api/v1/complaints/resolve (worker only). The body
// carries the confirmation code scanned from the resident's QR.
func (h *ComplaintHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}

	var req models.ResolveComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	resp, err := h.complaints.ResolveComplaint(principal.ID, req.Code)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/complaints/{id} (manager only)
func (h *ComplaintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := complaintIDFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Complaint ID must be a number")
		return
	}

	if err := h.complaints.DeleteComplaint(id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Complaint deleted"})
}

// ListResolutions handles GET /api/v1/resolutions (manager only)
func (h *ComplaintHandler) ListResolutions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.complaints.ListResolutions()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
