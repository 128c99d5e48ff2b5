package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	SecretCode string `json:"secretCode"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type StatsResponse struct {
	Channels int64 `json:"channels"`
	Users    int64 `json:"users"`
}
