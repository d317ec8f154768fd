package models

import "time"

// ErrorResponse is the JSON body returned for every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CreateComplaintRequest is the payload for POST /api/v1/complaints
type CreateComplaintRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    *string `json:"priority,omitempty"`
	PictureURL  *string `json:"picture_url,omitempty"`
}

// UpdateComplaintRequest carries requested field changes. Absent fields are
// left untouched; fields outside the caller's role allow-list are dropped.
type UpdateComplaintRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// AssignComplaintRequest is the payload for the manager assignment endpoint
type AssignComplaintRequest struct {
	WorkerCode string `json:"worker_code"`
	Priority   string `json:"priority"`
}

// ResolveComplaintRequest carries the confirmation code scanned from the
// resident's QR
type ResolveComplaintRequest struct {
	Code string `json:"code"`
}

// ResolveComplaintResponse reports the reward for a successful resolution
type ResolveComplaintResponse struct {
	Success         bool    `json:"success"`
	ComplaintNumber string  `json:"complaint_number"`
	ElapsedHours    float64 `json:"elapsed_hours"`
	TokensAwarded   int     `json:"tokens_awarded"`
}

// ComplaintResponse is the complaint shape returned to API clients
type ComplaintResponse struct {
	ComplaintID     int64     `json:"complaint_id"`
	ComplaintNumber string    `json:"complaint_number"`
	CreatedBy       int64     `json:"created_by"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	Priority        string    `json:"priority"`
	Picture         *string   `json:"picture,omitempty"`
	QRCode          *string   `json:"qr_code,omitempty"`
	AssignedTo      *int64    `json:"assigned_to,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewComplaintResponse converts a stored complaint to its API shape
func NewComplaintResponse(c *Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ComplaintID:     c.ComplaintID,
		ComplaintNumber: c.ComplaintNumber,
		CreatedBy:       c.CreatedBy,
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Status:          string(c.Status),
		Priority:        string(c.Priority),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.Picture.Valid {
		resp.Picture = &c.Picture.String
	}
	if c.QRCode.Valid {
		resp.QRCode = &c.QRCode.String
	}
	if c.AssignedTo.Valid {
		resp.AssignedTo = &c.AssignedTo.Int64
	}
	return resp
}

// RegisterResidentRequest is the payload for resident registration
type RegisterResidentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	FlatNumber string `json:"flat_number"`
	Address    string `json:"address"`
	Password   string `json:"password"`
}

// RegisterWorkerRequest is the payload for worker registration
type RegisterWorkerRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	WorkerCode     string `json:"worker_code"`
	Specialization string `json:"specialization"`
	Password       string `json:"password"`
}

// RegisterManagerRequest is the payload for manager registration
type RegisterManagerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ManagerCode string `json:"manager_code"`
	Password    string `json:"password"`
}

// LoginRequest is the payload for POST /api/v1/auth/login. Role selects
// which account table the phone is looked up in.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse returns the signed credential and the principal summary
type LoginResponse struct {
	Token string        `json:"token"`
	User  PrincipalInfo `json:"user"`
}

// PrincipalInfo is the identity summary embedded in credentials and
// returned from /auth/me
type PrincipalInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}
