package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"societydesk/service"
)

// DirectoryHandler serves account lookups: the worker directory the
// manager assigns from, plus individual profile reads.
type DirectoryHandler struct {
	accounts *service.AccountService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(accounts *service.AccountService) *DirectoryHandler {
	return &DirectoryHandler{accounts: accounts}
}

func idFromRequest(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}

// ListWorkers handles GET /api/v1/workers (manager only)
func (h *DirectoryHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.accounts.ListWorkers()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, workers)
}

// GetWorker handles GET /api/v1/workers/{id} (manager only)
func (h *DirectoryHandler) GetWorker(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Worker ID must be a number")
		return
	}

	worker, err := h.accounts.GetWorker(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, worker)
}

// GetResident handles GET /api/v1/residents/{id} (manager only)
func (h *DirectoryHandler) GetResident(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Resident ID must be a number")
		return
	}

	resident, err := h.accounts.GetResident(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resident)
}

// GetManager handles GET /api/v1/managers/{id} (manager only)
func (h *DirectoryHandler) GetManager(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Manager ID must be a number")
		return
	}

	manager, err := h.accounts.GetManager(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, manager)
}
