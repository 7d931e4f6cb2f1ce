package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotOccupantPriority(t *testing.T) {
	cfg := baseConfig()
	cfg.EntryPoints = []Pos{{3, 3}}
	m, err := New(cfg)
	require.NoError(t, err)

	p := Pos{1, 1}
	hostage := &Hostage{Id: m.getNextID()}
	disturbance := &Disturbance{Id: m.getNextID(), Severity: Active}
	alarm := &FalseAlarm{Id: m.getNextID()}
	gate := &Gate{Id: m.getNextID(), IsOpen: true}
	m.items[p] = []Entity{gate, alarm, disturbance, hostage}

	m.Agents[0].Pos = p
	assert.Equal(t, CellAgent, m.cellCode(p))

	m.Agents[0].Pos = Pos{0, 0}
	assert.Equal(t, CellHostage, m.cellCode(p))

	m.removeItem(hostage, p)
	assert.Equal(t, CellActive, m.cellCode(p))

	disturbance.Severity = Grave
	assert.Equal(t, CellGrave, m.cellCode(p))

	m.removeItem(disturbance, p)
	assert.Equal(t, CellFalseAlarm, m.cellCode(p))

	m.removeItem(alarm, p)
	assert.Equal(t, CellGateOpen, m.cellCode(p))

	gate.IsOpen = false
	assert.Equal(t, CellGateClosed, m.cellCode(p))

	m.removeItem(gate, p)
	assert.Equal(t, CellEmpty, m.cellCode(p))

	assert.Equal(t, CellEntryPoint, m.cellCode(Pos{3, 3}))
}

func TestSnapshotShape(t *testing.T) {
	cfg := baseConfig()
	cfg.Width, cfg.Height = 3, 2
	cfg.Walls = openWalls(3, 2)
	cfg.Walls[1][2].Bottom = true
	m, err := New(cfg)
	require.NoError(t, err)

	snap := m.Snapshot()
	require.Len(t, snap.Grid, 2)
	for _, row := range snap.Grid {
		assert.Len(t, row, 3)
	}
	require.Len(t, snap.Walls, 6)
	w, ok := snap.Walls["2,1"]
	require.True(t, ok)
	assert.True(t, w.Bottom)
	assert.False(t, w.Top)
}

func TestSnapshotJSONKeys(t *testing.T) {
	m, err := New(baseConfig())
	require.NoError(t, err)

	raw, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)

	var decoded struct {
		Grid  [][]int `json:"grid"`
		Walls map[string]struct {
			Top    bool `json:"top"`
			Left   bool `json:"left"`
			Bottom bool `json:"bottom"`
			Right  bool `json:"right"`
		} `json:"walls"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Grid, 4)
	assert.Contains(t, decoded.Walls, "0,0")
	assert.Contains(t, decoded.Walls, "3,3")
}

func TestFinalStatsResults(t *testing.T) {
	m, err := New(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, ResultTimeout, m.FinalStats().Result)

	m.StructuralDamage = m.DamageLimit
	assert.Equal(t, ResultDefeatStructural, m.FinalStats().Result)

	m.HostagesLost = m.LossLimit
	assert.Equal(t, ResultDefeatCasualties, m.FinalStats().Result)

	m.HostagesRescued = m.RescueTarget
	assert.Equal(t, ResultVictory, m.FinalStats().Result)

	stats := m.FinalStats()
	assert.Equal(t, m.TurnCounter, stats.TotalSteps)
	assert.Equal(t, m.FalseAlarmsInvestigated, stats.FalseAlarmsInvestigated)
}
