// Package dto defines request bodies for the auth endpoints.
package dto

// SignupReq represents the request body for the /signup endpoint.
// Passwords shorter than 8 characters are rejected at binding time.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
