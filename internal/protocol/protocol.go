package protocol

import (
	"time"

	"gitlandbot/internal/board"
)

// Message types sent from the hub to spectators
const (
	TypeWelcome = "welcome"
	TypeCycle   = "cycle"
)

type Message struct {
	Type        string       `json:"type"`
	SpectatorID string       `json:"spectatorId,omitempty"`
	Agents      []string     `json:"agents,omitempty"`
	Report      *CycleReport `json:"report,omitempty"`
}

// CycleReport describes one completed agent cycle.
type CycleReport struct {
	ID        string          `json:"id"`
	Agent     string          `json:"agent"`
	DecidedAt time.Time       `json:"decidedAt"`
	Team      string          `json:"team"`
	Position  board.Position  `json:"position"`
	Move      string          `json:"move"`
	Strategy  string          `json:"strategy,omitempty"`
	Target    *board.Position `json:"target,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Board     string          `json:"board"`
	Counters  board.Counters  `json:"counters"`
}
