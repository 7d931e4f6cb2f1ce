package server

import (
	"github.com/gorilla/websocket"

	"github.com/zucenko/rescue/model"
)

// MAX_STEPS is the driver-side turn cap. The engine itself has no timeout
// notion; a run that survives this many turns is reported as a timeout.
const MAX_STEPS = 500

type SimServer struct {
	Scenario Scenario
	Upgrader *websocket.Upgrader
}

type RunState int

const (
	RUN_NEW RunState = iota
	RUN_PLAY
	RUN_OVER
	RUN_ERR
)

// Run is one simulation execution: a fresh model stepped to terminal or the
// cap, with every turn's snapshot retained for the response.
type Run struct {
	Id    string
	State RunState
	Seed  int64
	Model *model.Model
	Steps []StepRecord
}

type StepRecord struct {
	Step      int            `json:"step"`
	GridState model.Snapshot `json:"grid_state"`
}

type RunResponse struct {
	RunId      string       `json:"run_id"`
	Seed       int64        `json:"seed"`
	FinalStats model.Stats  `json:"final_stats"`
	StepsData  []StepRecord `json:"steps_data"`
}

// WatchMessage is one frame on the /watch websocket: per-turn frames carry
// GridState, the closing frame carries FinalStats.
type WatchMessage struct {
	Step       int             `json:"step,omitempty"`
	GridState  *model.Snapshot `json:"grid_state,omitempty"`
	FinalStats *model.Stats    `json:"final_stats,omitempty"`
}
