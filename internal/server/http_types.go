package server

// SetRequest is the body of POST /set.
// Pointers distinguish a missing field from an empty string.
type SetRequest struct {
	Key   *string `json:"key"`
	Value *string `json:"value"`
}

// GetResponse is the body of a successful GET /get.
type GetResponse struct {
	Value string `json:"value"`
}

// ErrorResponse is the body of every JSON error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Plain-text confirmation bodies.
const (
	msgValueSet     = "Value set"
	msgValueRemoved = "Value removed"
	msgNotFound     = "Not found"
)
