package response_models

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
}
