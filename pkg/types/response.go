package types

// SuccessEnvelope wraps every successful storefront response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the machine-readable error surfaced to the storefront. Details
// carries field-level validation messages when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
