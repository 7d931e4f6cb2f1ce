package model

// Neighbour offsets in Top, Left, Bottom, Right order, matching the
// Walls field order.
var dirs = [4]Pos{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

const actionBudget = 4

const spawnChance = 0.05

const (
	mildEscalation   = 4
	activeEscalation = 6
)

// ContentsAt joins the agent view and the item view of a cell. Agents come
// first, matching the order actions are enumerated in.
func (m *Model) ContentsAt(p Pos) []Entity {
	var contents []Entity
	for _, a := range m.Agents {
		if a.Pos == p {
			contents = append(contents, a)
		}
	}
	return append(contents, m.items[p]...)
}

// CanMoveTo checks only the wall flags of the source cell; the destination
// cell's own facing flag is deliberately ignored. Asymmetric walls can exist
// in scenario data and keep their one-sided meaning.
func (m *Model) CanMoveTo(from, to Pos) bool {
	if !m.inBounds(to) {
		return false
	}
	if m.HasWallBetween(from, to) {
		return false
	}
	for _, e := range m.items[to] {
		if g, ok := e.(*Gate); ok && !g.IsOpen {
			return false
		}
	}
	return true
}

// HasWallBetween reports the directional flag on a facing b. Positions must
// be orthogonal neighbours.
func (m *Model) HasWallBetween(a, b Pos) bool {
	w := m.Walls[a]
	if w == nil {
		return false
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 1:
		return w.Right
	case dx == -1:
		return w.Left
	case dy == 1:
		return w.Bottom
	case dy == -1:
		return w.Top
	}
	return false
}

// BreakWallBetween clears the facing flag on both cells. This is the only
// operation that removes walls, so gameplay can never introduce asymmetry.
func (m *Model) BreakWallBetween(a, b Pos) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if w := m.Walls[a]; w != nil {
		switch {
		case dx == 1:
			w.Right = false
		case dx == -1:
			w.Left = false
		case dy == 1:
			w.Bottom = false
		case dy == -1:
			w.Top = false
		}
	}
	if w := m.Walls[b]; w != nil {
		switch {
		case dx == 1:
			w.Left = false
		case dx == -1:
			w.Right = false
		case dy == 1:
			w.Top = false
		case dy == -1:
			w.Bottom = false
		}
	}
}

// AvailableCell picks a random cell not blocked by a closed gate. Bounded
// retries, then a scan over all candidates, so a grid soaked in closed gates
// cannot loop forever. ok is false only when no cell qualifies.
func (m *Model) AvailableCell() (Pos, bool) {
	blocked := func(p Pos) bool {
		for _, e := range m.items[p] {
			if g, ok := e.(*Gate); ok && !g.IsOpen {
				return true
			}
		}
		return false
	}
	for i := 0; i < 4*m.Width*m.Height; i++ {
		p := Pos{m.rng.Intn(m.Width), m.rng.Intn(m.Height)}
		if !blocked(p) {
			return p, true
		}
	}
	var candidates []Pos
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if p := (Pos{x, y}); !blocked(p) {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return Pos{}, false
	}
	return candidates[m.rng.Intn(len(candidates))], true
}

func (m *Model) removeItem(e Entity, p Pos) {
	contents := m.items[p]
	for i, c := range contents {
		if c == e {
			m.items[p] = append(contents[:i], contents[i+1:]...)
			return
		}
	}
}

type actionKind int

const (
	actMove actionKind = iota
	actRescue
	actInvestigate
	actDropoff
	actContain
	actOpenGate
	actCloseGate
	actBreakWall
)

type action struct {
	kind   actionKind
	target Pos
	entity Entity
	cost   int
}

func (m *Model) legalActions(a *Agent) []action {
	var possible []action
	here := m.items[a.Pos]

	for _, d := range dirs {
		to := Pos{a.Pos.X + d.X, a.Pos.Y + d.Y}
		if !m.CanMoveTo(a.Pos, to) {
			continue
		}
		cost := 1
		for _, e := range m.items[to] {
			if _, ok := e.(*Disturbance); ok {
				cost = 2
				break
			}
		}
		if a.ActionPoints >= cost {
			possible = append(possible, action{kind: actMove, target: to, cost: cost})
		}
	}

	if !a.CarryingHostage {
		for _, e := range here {
			if h, ok := e.(*Hostage); ok {
				if a.ActionPoints >= 2 {
					possible = append(possible, action{kind: actRescue, entity: h, cost: 2})
				}
				break
			}
		}
	}

	for _, e := range here {
		if f, ok := e.(*FalseAlarm); ok {
			if a.ActionPoints >= 1 {
				possible = append(possible, action{kind: actInvestigate, entity: f, cost: 1})
			}
			break
		}
	}

	if a.CarryingHostage && a.ActionPoints >= 1 && m.isEntryPoint(a.Pos) {
		possible = append(possible, action{kind: actDropoff, cost: 1})
	}

	for _, e := range here {
		if d, ok := e.(*Disturbance); ok {
			switch {
			case d.Severity == Mild && a.ActionPoints >= 1:
				possible = append(possible, action{kind: actContain, entity: d, cost: 1})
			case d.Severity == Active && a.ActionPoints >= 2:
				possible = append(possible, action{kind: actContain, entity: d, cost: 2})
			}
			// grave offers no contain
			break
		}
	}

	for _, e := range here {
		if g, ok := e.(*Gate); ok {
			if a.ActionPoints >= 1 {
				kind := actOpenGate
				if g.IsOpen {
					kind = actCloseGate
				}
				possible = append(possible, action{kind: kind, entity: g, cost: 1})
			}
			break
		}
	}

	if a.ActionPoints >= 2 {
		for _, d := range dirs {
			to := Pos{a.Pos.X + d.X, a.Pos.Y + d.Y}
			if m.inBounds(to) && m.HasWallBetween(a.Pos, to) {
				possible = append(possible, action{kind: actBreakWall, target: to, cost: 2})
			}
		}
	}

	return possible
}

func (m *Model) apply(a *Agent, act action) {
	switch act.kind {
	case actMove:
		a.Pos = act.target
	case actRescue:
		a.CarryingHostage = true
		m.removeItem(act.entity, a.Pos)
	case actInvestigate:
		m.FalseAlarmsInvestigated++
		m.removeItem(act.entity, a.Pos)
	case actDropoff:
		a.CarryingHostage = false
		m.HostagesRescued++
	case actContain:
		m.removeItem(act.entity, a.Pos)
	case actOpenGate:
		act.entity.(*Gate).IsOpen = true
	case actCloseGate:
		act.entity.(*Gate).IsOpen = false
	case actBreakWall:
		m.BreakWallBetween(a.Pos, act.target)
		m.StructuralDamage++
	}
}

// agentTurn runs one agent's full decision loop: enumerate legal actions
// under the remaining budget, pick one uniformly, apply, pay, repeat. Every
// action costs at least 1 so the loop ends within 4 iterations; it ends
// early when nothing is affordable.
func (m *Model) agentTurn(a *Agent) {
	a.ActionPoints = actionBudget
	for a.ActionPoints > 0 {
		possible := m.legalActions(a)
		if len(possible) == 0 {
			break
		}
		act := possible[m.rng.Intn(len(possible))]
		m.apply(a, act)
		a.ActionPoints -= act.cost
	}
}

func (m *Model) isEntryPoint(p Pos) bool {
	for _, e := range m.EntryPoints {
		if e == p {
			return true
		}
	}
	return false
}

type placedDisturbance struct {
	pos Pos
	d   *Disturbance
}

// advanceDisturbances escalates every disturbance present at turn end, over
// a snapshot taken up front so explosions do not disturb the iteration.
// Afterwards one spawn draw may seed a fresh mild disturbance.
func (m *Model) advanceDisturbances() {
	var snapshot []placedDisturbance
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := Pos{x, y}
			for _, e := range m.items[p] {
				if d, ok := e.(*Disturbance); ok {
					snapshot = append(snapshot, placedDisturbance{p, d})
				}
			}
		}
	}
	for _, pd := range snapshot {
		pd.d.TurnsInState++
		if pd.d.Severity == Mild && pd.d.TurnsInState >= mildEscalation {
			pd.d.Severity = Active
			pd.d.TurnsInState = 0
		} else if pd.d.Severity == Active && pd.d.TurnsInState >= activeEscalation {
			pd.d.Severity = Grave
			m.explode(pd.pos)
		}
	}

	if m.rng.Float64() < spawnChance {
		p, ok := m.AvailableCell()
		if !ok {
			return
		}
		for _, e := range m.items[p] {
			if _, isDisturbance := e.(*Disturbance); isDisturbance {
				return
			}
		}
		m.items[p] = append(m.items[p], &Disturbance{Id: m.getNextID(), Severity: Mild})
	}
}

func (m *Model) explode(p Pos) {
	m.StructuralDamage++
	contents := append([]Entity(nil), m.items[p]...)
	for _, e := range contents {
		switch e.(type) {
		case *Hostage:
			m.HostagesLost++
			m.removeItem(e, p)
		case *Disturbance:
			m.removeItem(e, p)
		}
	}
}

func (m *Model) checkGameOver() {
	if m.HostagesRescued >= m.RescueTarget ||
		m.HostagesLost >= m.LossLimit ||
		m.StructuralDamage >= m.DamageLimit {
		m.Running = false
	}
}

// AdvanceOneTurn runs one full turn and reports whether the run is now
// terminal. RNG draws happen in a fixed order: agent shuffle, then each
// agent's action picks, then the hazard spawn and placement draws.
func (m *Model) AdvanceOneTurn() bool {
	m.TurnCounter++
	order := make([]*Agent, len(m.Agents))
	copy(order, m.Agents)
	m.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, a := range order {
		m.agentTurn(a)
	}
	m.advanceDisturbances()
	m.checkGameOver()
	return !m.Running
}
