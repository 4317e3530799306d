package handler

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

type GrokRequest struct {
	Prompt string `json:"prompt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
