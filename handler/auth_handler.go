package handler

import (
	"encoding/json"
	"net/http"

	"societydesk/middleware"
	"societydesk/models"
	"societydesk/service"
)

// AuthHandler handles registration and login for all three account types
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterResident handles POST /api/v1/auth/register/resident
func (h *AuthHandler) RegisterResident(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	resident, err := h.accounts.RegisterResident(&req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resident)
}

// RegisterWorker handles POST /api/v1/auth/register/worker
func (h *AuthHandler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	worker, err := h.accounts.RegisterWorker(&req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, worker)
}

// RegisterManager handles POST /api/v1/auth/register/manager
func (h *AuthHandler) RegisterManager(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	manager, err := h.accounts.RegisterManager(&req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, manager)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	resp, err := h.accounts.Login(&req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/v1/auth/me — echoes the authenticated principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", "Principal not found in context")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": principal})
}
