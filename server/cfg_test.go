package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/rescue/model"
)

func TestDefaultScenarioBuildsModel(t *testing.T) {
	cfg, err := DefaultScenario().ToConfig(1)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 6, cfg.Height)
	assert.Len(t, cfg.Hostages, 2)
	assert.Len(t, cfg.FalseAlarms, 1)
	assert.Len(t, cfg.Hazards, 10)
	assert.Len(t, cfg.Doors, 8)
	assert.Len(t, cfg.EntryPoints, 4)
	assert.Equal(t, 6, cfg.Agents)
	assert.Equal(t, 7, cfg.RescueTarget)
	assert.Equal(t, 4, cfg.LossLimit)
	assert.Equal(t, 25, cfg.DamageLimit)

	_, err = model.New(cfg)
	require.NoError(t, err)
}

func TestCellRefIsOneBased(t *testing.T) {
	assert.Equal(t, model.Pos{X: 5, Y: 0}, CellRef{Row: 1, Col: 6}.pos())
	assert.Equal(t, model.Pos{X: 0, Y: 0}, CellRef{Row: 1, Col: 1}.pos())
}

func TestToConfigWallFlags(t *testing.T) {
	sc := Scenario{
		Width:       2,
		Height:      1,
		Walls:       [][]string{{"1001", "0110"}},
		EntryPoints: []CellRef{{1, 1}},
		Agents:      1,
		Thresholds:  Thresholds{RescueTarget: 1, LossLimit: 1, DamageLimit: 1},
	}
	cfg, err := sc.ToConfig(0)
	require.NoError(t, err)

	require.Len(t, cfg.Walls, 1)
	require.Len(t, cfg.Walls[0], 2)
	assert.Equal(t, model.Walls{Top: true, Right: true}, cfg.Walls[0][0])
	assert.Equal(t, model.Walls{Left: true, Bottom: true}, cfg.Walls[0][1])
}

func TestToConfigRejectsBadData(t *testing.T) {
	base := func() Scenario {
		sc := DefaultScenario()
		return sc
	}

	sc := base()
	sc.Walls[0][0] = "110"
	_, err := sc.ToConfig(0)
	assert.Error(t, err)

	sc = base()
	sc.Walls[2][3] = "11x0"
	_, err = sc.ToConfig(0)
	assert.Error(t, err)

	sc = base()
	sc.PointsOfInterest[0].Kind = "treasure"
	_, err = sc.ToConfig(0)
	assert.Error(t, err)
}

func TestLoadScenarioFile(t *testing.T) {
	sc, err := Load("../data/scenario.json")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), sc)

	_, err = Load("../data/missing.json")
	assert.Error(t, err)
}
