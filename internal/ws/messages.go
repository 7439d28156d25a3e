package ws

import "encoding/json"

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "join"
	Body  json.RawMessage `json:"body,omitempty"` // arbitrary JSON object
}

// ──────────────────────────── Request DTOs ───────────────────────────────────

// JoinRequest is the body for "join". Fields are taken as-is: the relay does
// no input validation on them, the UI layer is expected to reject blanks.
type JoinRequest struct {
	Room     string `json:"room"`
	Nickname string `json:"nickname"`
}

// ChatRequest is the body for "chat".
type ChatRequest struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// ErrorBody is returned for failures.
type ErrorBody struct {
	Error string `json:"error"`
}
