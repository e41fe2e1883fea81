package types

// RequestIDHeader carries the per-request correlation id on requests and
// responses.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps the payload of admin and readiness endpoints.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody is the machine-readable part of a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is written for every failed JSON request. RequestID matches the
// request_id field of the server log entry for the same request.
type ErrorEnvelope struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// HealthStatus is the body of the liveness and readiness probes.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
