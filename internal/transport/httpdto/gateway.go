package httpdto

// MissingUserIDMessage is returned when a request carries no user_id.
const MissingUserIDMessage = "No user ID provided!"

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	UserToken string `json:"userToken"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
