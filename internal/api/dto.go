package api

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is returned for a completed inference run.
type ChatResponse struct {
	ID          string  `json:"id"`
	Success     bool    `json:"success"`
	Prompt      string  `json:"prompt"`
	Output      string  `json:"output"`
	TimeSeconds float64 `json:"time_seconds"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Note     string `json:"note,omitempty"`
	LlamaDir string `json:"llama_dir,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error       string  `json:"error"`
	TimeSeconds float64 `json:"time_seconds,omitempty"`
}
