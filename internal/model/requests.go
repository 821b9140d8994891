package model

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateGrievanceRequest is the payload for POST /api/grievances.
type CreateGrievanceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	UserID      string `json:"userId"`
}

// RespondRequest is the payload for POST /api/admin/grievances/respond.
type RespondRequest struct {
	GrievanceID string `json:"grievanceId"`
	Response    string `json:"response"`
	Status      string `json:"status"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse builds the error envelope returned by every failing route.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
