package stream

import "time"

// DeleteMode selects how the provider removes a user.
type DeleteMode string

const DeleteHard DeleteMode = "hard"

// UserRequest is the user payload accepted by the update-users endpoint.
type UserRequest struct {
	ID     string         `json:"id"`
	Role   string         `json:"role,omitempty"`
	Name   string         `json:"name,omitempty"`
	Image  string         `json:"image,omitempty"`
	Custom map[string]any `json:"custom,omitempty"`
}

type UpdateUsersRequest struct {
	Users map[string]UserRequest `json:"users"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateUsersResponse struct {
	Duration string                  `json:"duration"`
	Users    map[string]UserResponse `json:"users"`
}

type DeleteUsersRequest struct {
	UserIDs []string   `json:"user_ids"`
	User    DeleteMode `json:"user,omitempty"`
}

// DeleteUsersResponse carries the id of the asynchronous deletion task.
type DeleteUsersResponse struct {
	Duration string `json:"duration"`
	TaskID   string `json:"task_id"`
}
