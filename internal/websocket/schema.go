package websocket

import "github.com/examportal/examportal-backend/internal/model"

// Actions (Client -> Server)

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// Events (Server -> Client)

type Event string

const (
	EventError      Event = "error"
	EventConnected  Event = "connected"
	EventSubmission Event = "submission"
	EventPong       Event = "pong"
)

// ConnectedResponse confirms the monitor feed is live.
type ConnectedResponse struct {
	Event Event `json:"event"`
}

// SubmissionResponse carries one scored submission to monitoring admins.
type SubmissionResponse struct {
	Event      Event                 `json:"event"`
	Submission model.SubmissionEvent `json:"submission"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
