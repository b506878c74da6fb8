package dto

import "github.com/event-kit/ticketing-service/internal/auth"

// LoginResponse is returned from the OAuth callback: the minted bearer token
// alongside the profile, so API clients can use the Authorization header.
type LoginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    auth.SessionUser `json:"user"`
}
