package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email                   string `json:"email"`
	Password                string `json:"password"`
	FullName                string `json:"full_name"`
	OrganizationID          string `json:"organization_id,omitempty"`
	OrganizationName        string `json:"organization_name,omitempty"`
	OrganizationDescription string `json:"organization_description,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenPairResponse struct {
	Status string `json:"status"`
	Data   struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresAt    string `json:"expires_at"`
	} `json:"data"`
}

type LogoutResponse struct {
	Status string `json:"status"`
	Data   struct {
		Revoked bool `json:"revoked"`
	} `json:"data"`
}

type MeResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID         string `json:"user_id"`
		Email          string `json:"email"`
		FullName       string `json:"full_name"`
		Role           string `json:"role"`
		OrganizationID string `json:"organization_id"`
	} `json:"data"`
}
