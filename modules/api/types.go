package api

// ErrorResponse is the uniform HTTP error payload. Error carries the machine
// readable kind, Message the human readable detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status string `json:"status"`
	Module string `json:"module"`
}
