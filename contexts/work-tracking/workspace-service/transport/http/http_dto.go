package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OrganizationsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Organizations []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			CreatedAt   string `json:"created_at"`
		} `json:"organizations"`
	} `json:"data"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ProjectResponse struct {
	Status string `json:"status"`
	Data   struct {
		ID             string `json:"id"`
		OrganizationID string `json:"organization_id"`
		Name           string `json:"name"`
		Description    string `json:"description"`
		CreatedBy      string `json:"created_by"`
		CreatedAt      string `json:"created_at"`
	} `json:"data"`
}

type ProjectsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Projects []struct {
			ID             string `json:"id"`
			OrganizationID string `json:"organization_id"`
			Name           string `json:"name"`
			Description    string `json:"description"`
			CreatedBy      string `json:"created_by"`
			CreatedAt      string `json:"created_at"`
		} `json:"projects"`
	} `json:"data"`
}

type MembersResponse struct {
	Status string `json:"status"`
	Data   struct {
		Members []struct {
			UserID  string `json:"user_id"`
			AddedAt string `json:"added_at"`
		} `json:"members"`
	} `json:"data"`
}

type DeletedResponse struct {
	Status string `json:"status"`
	Data   struct {
		Deleted bool `json:"deleted"`
	} `json:"data"`
}

type MemberChangedResponse struct {
	Status string `json:"status"`
	Data   struct {
		ProjectID string `json:"project_id"`
		UserID    string `json:"user_id"`
	} `json:"data"`
}
