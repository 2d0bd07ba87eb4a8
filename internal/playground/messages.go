package playground

import "encoding/json"

// Client message types
const (
	TypeRun   = "run"
	TypeInput = "input"
	TypeEOF   = "eof"
	TypePing  = "ping"
)

// Server message types
const (
	TypeOutput = "output"
	TypeError  = "error"
	TypeDone   = "done"
	TypePong   = "pong"
)

// Error codes for failures outside the program itself
const (
	CodeInvalidPayload = "invalid_payload"
	CodeInvalidRequest = "invalid_request"
	CodeUnknownType    = "unknown_type"
	CodeBusy           = "busy"
	CodeNotRunning     = "not_running"
	CodeInputOverflow  = "input_overflow"
	CodeInputClosed    = "input_closed"
)

// WSMessage is a client request
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RunPayload starts a program. Input lines may be supplied up front.
type RunPayload struct {
	Source string   `json:"source"`
	Input  []string `json:"input,omitempty"`
}

// InputPayload feeds one line to the running program
type InputPayload struct {
	Line string `json:"line"`
}

// WSResponse is a server message
type WSResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// OutputPayload carries text written by print or assert
type OutputPayload struct {
	Text string `json:"text"`
}

// ErrorPayload describes a failed request or program run. Category is set
// for program errors (lexical, syntax, semantic, runtime, internal).
type ErrorPayload struct {
	Code     string `json:"code"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
}

// DonePayload ends a run
type DonePayload struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
}
