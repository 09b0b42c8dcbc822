package websocket

import "github.com/ricogpa/ricogpa-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// Request is any message sent by the client.
type Request struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError   Event = "error"
	EventSummary Event = "summary"
	EventPong    Event = "pong"
)

// SummaryEvent carries the caller's current GPA summary.
type SummaryEvent struct {
	Event   Event         `json:"event"`
	Summary model.Summary `json:"summary"`
}

type PongEvent struct {
	Event Event `json:"event"`
}

type ErrorEvent struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
