package server

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zucenko/rescue/model"
)

const KIND_HOSTAGE = "hostage"
const KIND_FALSE_ALARM = "false-alarm"

// CellRef addresses a cell the way the scenario data does, 1-based
// (row, col).
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c CellRef) pos() model.Pos {
	return model.Pos{X: c.Col - 1, Y: c.Row - 1}
}

type Marker struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Kind string `json:"kind"`
}

type Thresholds struct {
	RescueTarget int `json:"rescue_target"`
	LossLimit    int `json:"loss_limit"`
	DamageLimit  int `json:"damage_limit"`
}

// Scenario is the on-disk run configuration. Walls is Height rows of Width
// cells, each cell a 4-digit string in top/left/bottom/right order, "1"
// meaning walled.
type Scenario struct {
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	Walls            [][]string `json:"walls"`
	PointsOfInterest []Marker   `json:"points_of_interest"`
	Hazards          []CellRef  `json:"hazards"`
	Doors            []CellRef  `json:"doors"`
	EntryPoints      []CellRef  `json:"entry_points"`
	Agents           int        `json:"agents"`
	Thresholds       Thresholds `json:"thresholds"`
}

func Load(path string) (Scenario, error) {
	var sc Scenario
	file, err := os.Open(path)
	if err != nil {
		return sc, err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(&sc); err != nil {
		return sc, fmt.Errorf("decoding scenario %s: %v", path, err)
	}
	return sc, nil
}

// ToConfig translates the 1-based scenario data into the engine config.
// Structural problems in the wall grid are caught here; cell bounds are the
// engine's job.
func (sc Scenario) ToConfig(seed int64) (model.Config, error) {
	cfg := model.Config{
		Width:        sc.Width,
		Height:       sc.Height,
		Agents:       sc.Agents,
		RescueTarget: sc.Thresholds.RescueTarget,
		LossLimit:    sc.Thresholds.LossLimit,
		DamageLimit:  sc.Thresholds.DamageLimit,
		Seed:         seed,
	}

	for _, row := range sc.Walls {
		cfgRow := make([]model.Walls, 0, len(row))
		for _, cell := range row {
			if len(cell) != 4 {
				return cfg, fmt.Errorf("wall cell %q: want 4 flags", cell)
			}
			for _, ch := range cell {
				if ch != '0' && ch != '1' {
					return cfg, fmt.Errorf("wall cell %q: flags must be 0 or 1", cell)
				}
			}
			cfgRow = append(cfgRow, model.Walls{
				Top:    cell[0] == '1',
				Left:   cell[1] == '1',
				Bottom: cell[2] == '1',
				Right:  cell[3] == '1',
			})
		}
		cfg.Walls = append(cfg.Walls, cfgRow)
	}

	for _, m := range sc.PointsOfInterest {
		switch m.Kind {
		case KIND_HOSTAGE:
			cfg.Hostages = append(cfg.Hostages, CellRef{Row: m.Row, Col: m.Col}.pos())
		case KIND_FALSE_ALARM:
			cfg.FalseAlarms = append(cfg.FalseAlarms, CellRef{Row: m.Row, Col: m.Col}.pos())
		default:
			return cfg, fmt.Errorf("point of interest kind %q unknown", m.Kind)
		}
	}
	for _, c := range sc.Hazards {
		cfg.Hazards = append(cfg.Hazards, c.pos())
	}
	for _, c := range sc.Doors {
		cfg.Doors = append(cfg.Doors, c.pos())
	}
	for _, c := range sc.EntryPoints {
		cfg.EntryPoints = append(cfg.EntryPoints, c.pos())
	}

	return cfg, nil
}

// DefaultScenario is the fixed 8x6 station layout the simulation ships
// with: 2 hostages, 1 false alarm, 10 hazard markers, 8 doors, 4 entry
// points, 6 agents.
func DefaultScenario() Scenario {
	return Scenario{
		Width:  8,
		Height: 6,
		Walls: [][]string{
			{"1100", "1000", "1001", "1100", "1001", "1100", "1000", "1001"},
			{"0100", "0000", "0011", "0110", "0011", "0110", "0010", "0011"},
			{"0100", "0001", "1100", "1000", "1000", "1001", "1100", "1001"},
			{"0110", "0011", "0110", "0010", "0010", "0011", "0110", "0011"},
			{"1100", "1000", "1000", "1000", "1001", "1100", "1001", "1101"},
			{"0110", "0010", "0010", "0010", "0011", "0110", "0011", "0111"},
		},
		PointsOfInterest: []Marker{
			{Row: 2, Col: 5, Kind: KIND_HOSTAGE},
			{Row: 5, Col: 2, Kind: KIND_FALSE_ALARM},
			{Row: 5, Col: 8, Kind: KIND_HOSTAGE},
		},
		Hazards: []CellRef{
			{2, 2}, {2, 3}, {3, 2}, {3, 3}, {3, 4},
			{3, 5}, {4, 4}, {5, 6}, {5, 7}, {6, 6},
		},
		Doors: []CellRef{
			{1, 3}, {2, 5}, {2, 8}, {3, 2}, {4, 4}, {4, 6}, {6, 5}, {6, 7},
		},
		EntryPoints: []CellRef{
			{1, 6}, {3, 1}, {4, 8}, {6, 3},
		},
		Agents: 6,
		Thresholds: Thresholds{
			RescueTarget: 7,
			LossLimit:    4,
			DamageLimit:  25,
		},
	}
}
