package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// HealthCheckResponse returns the health check response, duh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// GuestTokenResponse carries a freshly minted anonymous identity
type GuestTokenResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}
