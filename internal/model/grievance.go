package model

import "time"

// Grievance status values. Transitions are unrestricted: an update may move a
// grievance from any status to any other.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Grievance is a complaint record as persisted in the grievances collection.
// SubmittedAt and UserID are set at creation and never change. AdminResponse
// and RespondedAt are absent until an administrator responds; they are set
// together.
type Grievance struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Department    string     `json:"department"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	UserID        string     `json:"userId"`
	AdminResponse string     `json:"adminResponse,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
}

// GrievanceUpdate is a partial field set for updating a grievance. Nil fields
// are preserved on the existing record. ID, SubmittedAt, and UserID are not
// updatable.
type GrievanceUpdate struct {
	Title         *string
	Description   *string
	Department    *string
	Status        *string
	AdminResponse *string
	RespondedAt   *time.Time
}

// GrievanceWithUser annotates a grievance with the submitter's name and email
// for the admin listing. Dangling user references resolve to the
// "Unknown User" / "Unknown Email" placeholders.
type GrievanceWithUser struct {
	Grievance
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}
