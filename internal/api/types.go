// Package api holds response envelopes shared by all HTTP handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body for simple acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries issued authentication tokens.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Page wraps a paginated list response.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
