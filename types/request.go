package types

type ChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}
