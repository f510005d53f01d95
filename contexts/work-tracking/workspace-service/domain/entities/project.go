package entities

import "time"

// Project is a unit of work organization scoped to one tenant.
type Project struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProjectMember is the explicit membership edge between a project and a
// user. Managers and admins pass project access checks without one; members
// need it.
type ProjectMember struct {
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	AddedAt   time.Time `json:"added_at"`
}
