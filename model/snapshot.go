package model

import "fmt"

// Cell codes understood by the visualization client.
const (
	CellEmpty      = 0
	CellAgent      = 2
	CellHostage    = 3
	CellMild       = 4
	CellActive     = 5
	CellEntryPoint = 6
	CellFalseAlarm = 7
	CellGrave      = 8
	CellGateOpen   = 9
	CellGateClosed = 10
)

// Snapshot is the per-turn view handed to the driver. Grid is row major,
// Grid[y][x]; Walls keys are "x,y".
type Snapshot struct {
	Grid  [][]int          `json:"grid"`
	Walls map[string]Walls `json:"walls"`
}

const (
	ResultVictory          = "VICTORY"
	ResultDefeatCasualties = "DEFEAT_CASUALTIES"
	ResultDefeatStructural = "DEFEAT_STRUCTURAL"
	ResultTimeout          = "TIMEOUT"
)

type Stats struct {
	Result                  string `json:"result"`
	TotalSteps              int    `json:"total_steps"`
	HostagesRescued         int    `json:"hostages_rescued"`
	HostagesLost            int    `json:"hostages_lost"`
	StructuralDamage        int    `json:"structural_damage"`
	FalseAlarmsInvestigated int    `json:"false_alarms_investigated"`
}

// Snapshot encodes every cell as its highest-priority occupant:
// agent > hostage > disturbance > false alarm > entry point > gate.
func (m *Model) Snapshot() Snapshot {
	grid := make([][]int, m.Height)
	for y := 0; y < m.Height; y++ {
		grid[y] = make([]int, m.Width)
		for x := 0; x < m.Width; x++ {
			grid[y][x] = m.cellCode(Pos{x, y})
		}
	}
	walls := make(map[string]Walls, len(m.Walls))
	for p, w := range m.Walls {
		walls[fmt.Sprintf("%d,%d", p.X, p.Y)] = *w
	}
	return Snapshot{Grid: grid, Walls: walls}
}

func (m *Model) cellCode(p Pos) int {
	contents := m.ContentsAt(p)
	for _, e := range contents {
		if _, ok := e.(*Agent); ok {
			return CellAgent
		}
	}
	for _, e := range contents {
		if _, ok := e.(*Hostage); ok {
			return CellHostage
		}
	}
	for _, e := range contents {
		if d, ok := e.(*Disturbance); ok {
			switch d.Severity {
			case Grave:
				return CellGrave
			case Active:
				return CellActive
			default:
				return CellMild
			}
		}
	}
	for _, e := range contents {
		if _, ok := e.(*FalseAlarm); ok {
			return CellFalseAlarm
		}
	}
	if m.isEntryPoint(p) {
		return CellEntryPoint
	}
	for _, e := range contents {
		if g, ok := e.(*Gate); ok {
			if g.IsOpen {
				return CellGateOpen
			}
			return CellGateClosed
		}
	}
	return CellEmpty
}

// FinalStats is the read-only run summary. Result priority mirrors the
// game-over check; anything still running when the driver stops is a
// timeout.
func (m *Model) FinalStats() Stats {
	result := ResultTimeout
	switch {
	case m.HostagesRescued >= m.RescueTarget:
		result = ResultVictory
	case m.HostagesLost >= m.LossLimit:
		result = ResultDefeatCasualties
	case m.StructuralDamage >= m.DamageLimit:
		result = ResultDefeatStructural
	}
	return Stats{
		Result:                  result,
		TotalSteps:              m.TurnCounter,
		HostagesRescued:         m.HostagesRescued,
		HostagesLost:            m.HostagesLost,
		StructuralDamage:        m.StructuralDamage,
		FalseAlarmsInvestigated: m.FalseAlarmsInvestigated,
	}
}
