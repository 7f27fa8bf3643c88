// Package protocol defines the wire messages of the live monitor: a
// subscribe handshake, a stream of per-step state frames, and the control
// frames a client may send back.
package protocol

import (
	"harvestsim/internal/model"
	"harvestsim/internal/popdyn"
)

const Version = 1

// Control frame types.
const (
	TypeSubscribe  = "subscribe"
	TypeSetMode    = "set_mode"
	TypeSetHarvest = "set_harvest"
	TypeToggleRun  = "toggle_run"
	TypeReset      = "reset"
	TypeSetRate    = "set_rate"
)

// Server frame types.
const (
	TypeHello  = "hello"
	TypeState  = "state"
	TypeStatus = "status"
	TypeError  = "error"
)

// SubscribeMsg is the mandatory first client frame.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion int    `json:"protocol_version"`
}

// ControlMsg carries any post-handshake client request. Fields beyond Type
// are meaningful only for the matching request type.
type ControlMsg struct {
	Type    string     `json:"type"`
	Mode    string     `json:"mode,omitempty"`
	Harvest [3]float64 `json:"harvest,omitempty"`
	RateHz  float64    `json:"rate_hz,omitempty"`
}

// HelloMsg answers a successful subscribe with everything a renderer needs to
// draw the current run: mode parameter specs for widget labelling, the full
// history so far, and the live status.
type HelloMsg struct {
	Type            string            `json:"type"`
	ProtocolVersion int               `json:"protocol_version"`
	SessionID       string            `json:"session_id"`
	Specs           []popdyn.ModeSpec `json:"specs"`
	History         []model.Point     `json:"history"`
	Status          StatusMsg         `json:"status"`
}

// StateMsg is emitted once per simulation step.
type StateMsg struct {
	Type   string            `json:"type"`
	Year   int               `json:"year"`
	Stages model.StageVector `json:"stages"`
	Total  float64           `json:"total"`
}

// StatusMsg reports the control-plane state after any control frame and on
// hello.
type StatusMsg struct {
	Type    string     `json:"type"`
	Running bool       `json:"running"`
	Year    int        `json:"year"`
	Mode    string     `json:"mode"`
	Harvest [3]float64 `json:"harvest"`
	RateHz  float64    `json:"rate_hz"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(message string) ErrorMsg {
	return ErrorMsg{Type: TypeError, Message: message}
}
