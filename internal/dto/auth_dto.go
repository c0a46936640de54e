package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Gender      string   `json:"gender"`
	FitnessGoal string   `json:"fitness_goal"`
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

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Age         *int      `json:"age"`
	Weight      *float64  `json:"weight"`
	Height      *float64  `json:"height"`
	Gender      string    `json:"gender"`
	FitnessGoal string    `json:"fitness_goal"`
	CreatedAt   string    `json:"created_at"`
}

// UpdateProfileRequest carries only the fields present in the body.
type UpdateProfileRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Gender      *string  `json:"gender"`
	FitnessGoal *string  `json:"fitness_goal"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Plugins   int    `json:"plugins"`
}
