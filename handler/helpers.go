package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"societydesk/models"
	"societydesk/service"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	response := models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	}
	respondWithJSON(w, statusCode, response)
}

// respondWithServiceError maps service error kinds to HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Unauthenticated", err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, service.ErrCodeMismatch):
		respondWithError(w, http.StatusNotFound, "Code mismatch", err.Error())
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, service.ErrInvalidAssignment):
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid assignment", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// complaintResponses converts stored complaints to their API shape
func complaintResponses(complaints []models.Complaint) []models.ComplaintResponse {
	responses := make([]models.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		responses = append(responses, models.NewComplaintResponse(&complaints[i]))
	}
	return responses
}
