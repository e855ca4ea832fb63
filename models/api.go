package models

const (
	StatusSuccess = "Success"
	StatusError   = "Error"

	LoginSuccess       = "Success"
	LoginWrongPassword = "Wrong password"
)

// APIResponse is the envelope returned by every mutation endpoint.
type APIResponse struct {
	Status string            `json:"status"`
	Data   interface{}       `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}
