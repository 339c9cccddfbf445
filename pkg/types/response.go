package types

import "time"

type SuccessEnvelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// AuthErrorEnvelope is returned for 401 and 403 responses.
type AuthErrorEnvelope struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// ErrorEnvelope is returned for every other handled failure.
type ErrorEnvelope struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Details     any               `json:"details,omitempty"`
}
