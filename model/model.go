package model

import (
	"fmt"
	"math/rand"
)

type Pos struct {
	X, Y int
}

// Walls holds the four directional flags of one cell. A set flag blocks
// exit from this cell toward that side. Flags are stored per cell, not per
// edge, so two neighbours may disagree about a shared edge.
type Walls struct {
	Top    bool `json:"top"`
	Left   bool `json:"left"`
	Bottom bool `json:"bottom"`
	Right  bool `json:"right"`
}

type Severity int

const (
	Mild Severity = iota
	Active
	Grave
)

func (s Severity) Name() string {
	switch s {
	case Mild:
		return "mild"
	case Active:
		return "active"
	case Grave:
		return "grave"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

type Entity interface {
	ID() int
}

type Hostage struct {
	Id int
}

func (h *Hostage) ID() int { return h.Id }

type FalseAlarm struct {
	Id int
}

func (f *FalseAlarm) ID() int { return f.Id }

type Gate struct {
	Id     int
	IsOpen bool
}

func (g *Gate) ID() int { return g.Id }

type Disturbance struct {
	Id           int
	Severity     Severity
	TurnsInState int
}

func (d *Disturbance) ID() int { return d.Id }

type Agent struct {
	Id              int
	Pos             Pos
	ActionPoints    int
	CarryingHostage bool
}

func (a *Agent) ID() int { return a.Id }

// Config is everything the engine consumes at construction. Cell lists use
// zero-based positions. Walls is indexed [y][x] and must be exactly Height
// rows of Width cells.
type Config struct {
	Width, Height int
	Walls         [][]Walls
	EntryPoints   []Pos
	Hostages      []Pos
	FalseAlarms   []Pos
	Hazards       []Pos
	Doors         []Pos
	Agents        int
	RescueTarget  int
	LossLimit     int
	DamageLimit   int
	Seed          int64
}

type Model struct {
	Width, Height int
	Walls         map[Pos]*Walls
	EntryPoints   []Pos

	// items holds everything except agents; agents keep their own slice so
	// the scheduler can shuffle them. ContentsAt joins both views.
	items  map[Pos][]Entity
	Agents []*Agent

	HostagesRescued         int
	HostagesLost            int
	StructuralDamage        int
	FalseAlarmsInvestigated int
	TurnCounter             int
	Running                 bool

	RescueTarget int
	LossLimit    int
	DamageLimit  int

	rng    *rand.Rand
	nextID int
}

func New(cfg Config) (*Model, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Walls) != cfg.Height {
		return nil, fmt.Errorf("wall grid has %d rows, want %d", len(cfg.Walls), cfg.Height)
	}
	for y, row := range cfg.Walls {
		if len(row) != cfg.Width {
			return nil, fmt.Errorf("wall row %d has %d cells, want %d", y, len(row), cfg.Width)
		}
	}
	if cfg.Agents <= 0 {
		return nil, fmt.Errorf("agent count must be positive, got %d", cfg.Agents)
	}
	if len(cfg.EntryPoints) == 0 {
		return nil, fmt.Errorf("at least one entry point required")
	}
	if cfg.RescueTarget <= 0 || cfg.LossLimit <= 0 || cfg.DamageLimit <= 0 {
		return nil, fmt.Errorf("thresholds must be positive, got (%d,%d,%d)",
			cfg.RescueTarget, cfg.LossLimit, cfg.DamageLimit)
	}

	m := &Model{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Walls:        make(map[Pos]*Walls),
		EntryPoints:  append([]Pos(nil), cfg.EntryPoints...),
		items:        make(map[Pos][]Entity),
		Running:      true,
		RescueTarget: cfg.RescueTarget,
		LossLimit:    cfg.LossLimit,
		DamageLimit:  cfg.DamageLimit,
		rng:          rand.New(rand.NewSource(cfg.Seed)),
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			w := cfg.Walls[y][x]
			m.Walls[Pos{x, y}] = &w
		}
	}

	check := func(what string, ps []Pos) error {
		for _, p := range ps {
			if !m.inBounds(p) {
				return fmt.Errorf("%s at (%d,%d) out of %dx%d grid", what, p.X, p.Y, cfg.Width, cfg.Height)
			}
		}
		return nil
	}
	placements := []struct {
		what string
		ps   []Pos
	}{
		{"entry point", cfg.EntryPoints},
		{"hostage", cfg.Hostages},
		{"false alarm", cfg.FalseAlarms},
		{"hazard marker", cfg.Hazards},
		{"door", cfg.Doors},
	}
	for _, pl := range placements {
		if err := check(pl.what, pl.ps); err != nil {
			return nil, err
		}
	}

	// Setup draws happen in a fixed order so a seed reproduces the run:
	// agent placement first, then gate states.
	for i := 0; i < cfg.Agents; i++ {
		entry := m.EntryPoints[m.rng.Intn(len(m.EntryPoints))]
		m.Agents = append(m.Agents, &Agent{Id: m.getNextID(), Pos: entry})
	}
	for _, p := range cfg.Hostages {
		m.items[p] = append(m.items[p], &Hostage{Id: m.getNextID()})
	}
	for _, p := range cfg.FalseAlarms {
		m.items[p] = append(m.items[p], &FalseAlarm{Id: m.getNextID()})
	}
	for _, p := range cfg.Hazards {
		m.items[p] = append(m.items[p], &Disturbance{Id: m.getNextID(), Severity: Mild})
	}
	for _, p := range cfg.Doors {
		m.items[p] = append(m.items[p], &Gate{Id: m.getNextID(), IsOpen: m.rng.Intn(2) == 0})
	}

	return m, nil
}

func (m *Model) getNextID() int {
	m.nextID++
	return m.nextID
}

func (m *Model) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}
