package pacman

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Tuning holds every gameplay constant of a session.
// Sizes and speeds are world units; one cell is the maze's CellSize.
type Tuning struct {
	PlayerSize     float64
	PlayerSpeed    float64
	PursuerSize    float64
	PursuerSpeed   float64
	SpeedVariation float64
	PowerDuration  time.Duration

	PelletValue      int
	PowerPelletValue int
	PursuerValue     int
}

// DefaultTuning returns the classic values for a 40-unit cell.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSize:       30,
		PlayerSpeed:      120,
		PursuerSize:      36,
		PursuerSpeed:     72,
		SpeedVariation:   0.1,
		PowerDuration:    5 * time.Second,
		PelletValue:      10,
		PowerPelletValue: 50,
		PursuerValue:     200,
	}
}

// Outcome is the session's terminal status.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeDead
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDead:
		return "dead"
	case OutcomeCleared:
		return "cleared"
	default:
		return "playing"
	}
}

// PowerState is the countdown shared by all pursuers.
type PowerState struct {
	remaining time.Duration
	active    bool
}

// Activate switches to Vulnerable with a fresh timer.
func (p *PowerState) Activate(d time.Duration) {
	p.remaining = d
	p.active = d > 0
}

// Tick burns dt and reverts to Normal once the timer reaches zero or below.
func (p *PowerState) Tick(dt time.Duration) {
	if !p.active {
		return
	}
	p.remaining -= dt
	if p.remaining <= 0 {
		p.remaining = 0
		p.active = false
	}
}

// Mode returns the pursuer mode implied by the timer.
func (p PowerState) Mode() Mode {
	if p.active {
		return ModeFlee
	}
	return ModeChase
}

// Vulnerable reports whether pursuers can be eaten.
func (p PowerState) Vulnerable() bool { return p.active }

// Remaining returns the time left in Vulnerable mode.
func (p PowerState) Remaining() time.Duration { return p.remaining }

// Pellet is a consumable still on the board.
type Pellet struct {
	Cell  Cell
	Power bool
	box   core.RectF
}

// Session is one play-through on a fixed maze. It is not safe for concurrent use.
type Session struct {
	maze   *Maze
	tuning Tuning
	rng    *rand.Rand

	player   Player
	pursuers []*Pursuer
	pellets  []Pellet
	power    PowerState

	speedScale float64
	score      int
	outcome    Outcome
	elapsed    time.Duration
}

// NewSession places the player, pursuers and pellets according to the maze.
// Pursuer speed multipliers and initial headings are drawn from seed.
func NewSession(m *Maze, t Tuning, seed int64) *Session {
	s := &Session{
		maze:       m,
		tuning:     t,
		rng:        rand.New(rand.NewSource(seed)),
		speedScale: 1,
	}

	cs := m.CellSize()
	s.player = newPlayer(centeredIn(m.CellBounds(m.PlayerStart()), t.PlayerSize), t.PlayerSize, t.PlayerSpeed)

	for i, c := range m.PursuerStarts() {
		pos := centeredIn(m.CellBounds(c), t.PursuerSize)
		p := &Pursuer{
			box:   core.NewRectF(pos.X, pos.Y, t.PursuerSize, t.PursuerSize),
			speed: t.PursuerSpeed * (1 + s.rng.Float64()*t.SpeedVariation),
			slot:  i,
			dir:   DirLeft,
		}
		if s.rng.Intn(2) == 1 {
			p.dir = DirRight
		}
		s.pursuers = append(s.pursuers, p)
	}

	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			c := Cell{Col: col, Row: row}
			var size float64
			switch m.At(c) {
			case CellPellet:
				size = cs / 4
			case CellPowerPellet:
				size = cs * 0.3
			default:
				continue
			}
			pos := centeredIn(m.CellBounds(c), size)
			s.pellets = append(s.pellets, Pellet{
				Cell:  c,
				Power: m.At(c) == CellPowerPellet,
				box:   core.NewRectF(pos.X, pos.Y, size, size),
			})
		}
	}
	return s
}

// centeredIn returns the top-left corner of a size x size box centred in cell.
func centeredIn(cell core.RectF, size float64) core.Vec {
	inset := (cell.W - size) / 2
	return core.Vec{X: cell.X + inset, Y: cell.Y + inset}
}

// SetSpeedScale multiplies the player's and every pursuer's speed, for
// difficulty progression.
func (s *Session) SetSpeedScale(k float64) {
	if k > 0 {
		s.speedScale = k
	}
}

// Step advances the session by dt with the current directional input.
// It returns the notable events of this frame. Terminal sessions ignore
// further steps and return nil.
func (s *Session) Step(dt time.Duration, input Direction) []core.Event {
	if s.outcome != OutcomePlaying {
		return nil
	}

	secs := dt.Seconds()
	walls := s.maze.Walls()
	w, h := s.maze.Width(), s.maze.Height()
	var events []core.Event

	s.elapsed += dt

	// 1. Power timer
	s.power.Tick(dt)
	mode := s.power.Mode()

	// 2-4. Player: turn, move, wrap
	p := &s.player
	p.Queue(input)
	p.animate(dt)
	step := p.speed * s.speedScale * secs
	if p.queued != DirNone {
		probe := p.box.Moved(p.queued.Delta().Scale(step))
		if !blocked(probe, walls) {
			p.dir = p.queued
			p.queued = DirNone
		}
	}
	if p.dir != DirNone {
		next := p.box.Moved(p.dir.Delta().Scale(step))
		if blocked(next, walls) {
			p.dir = DirNone
		} else {
			p.box = next
		}
	}
	wrap(p, w, h)

	// 5. Pursuers
	target := p.box.Center()
	for _, g := range s.pursuers {
		g.animate(mode, dt)
		steer(g, mode, target, walls, g.speed*s.speedScale, secs, s.rng)
		wrap(g, w, h)
	}

	// 6. Consumables
	kept := s.pellets[:0]
	for _, pl := range s.pellets {
		if !p.box.Intersects(pl.box) {
			kept = append(kept, pl)
			continue
		}
		if pl.Power {
			s.score += s.tuning.PowerPelletValue
			s.power.Activate(s.tuning.PowerDuration)
			events = append(events, core.EventPowerUp)
		} else {
			s.score += s.tuning.PelletValue
			events = append(events, core.EventPellet)
		}
	}
	s.pellets = kept

	// 7. Player vs pursuers. Mode is re-read: a power pellet eaten this
	// frame already protects the player.
	if hits := s.touching(); len(hits) > 0 {
		if s.power.Vulnerable() {
			s.removePursuers(hits)
			for range hits {
				s.score += s.tuning.PursuerValue
				events = append(events, core.EventEnemyDestroyed)
			}
		} else {
			p.alive = false
			p.dir = DirNone
			p.queued = DirNone
			s.outcome = OutcomeDead
			events = append(events, core.EventDeath)
		}
	}

	// 8. Board cleared. Death in the same frame takes precedence.
	if s.outcome == OutcomePlaying && len(s.pellets) == 0 {
		s.outcome = OutcomeCleared
		events = append(events, core.EventCleared)
	}

	return events
}

// touching returns the pursuers whose box and inscribed circle overlap the player.
func (s *Session) touching() []*Pursuer {
	var hits []*Pursuer
	pb := s.player.box
	for _, g := range s.pursuers {
		if pb.Intersects(g.box) && core.CirclesOverlap(pb, g.box) {
			hits = append(hits, g)
		}
	}
	return hits
}

func (s *Session) removePursuers(gone []*Pursuer) {
	kept := s.pursuers[:0]
	for _, g := range s.pursuers {
		eaten := false
		for _, h := range gone {
			if g == h {
				eaten = true
				break
			}
		}
		if !eaten {
			kept = append(kept, g)
		}
	}
	s.pursuers = kept
}

// Maze returns the session's maze.
func (s *Session) Maze() *Maze { return s.maze }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Pursuers returns copies of the remaining pursuers.
func (s *Session) Pursuers() []Pursuer {
	out := make([]Pursuer, len(s.pursuers))
	for i, g := range s.pursuers {
		out[i] = *g
	}
	return out
}

// Pellets returns the consumables still on the board.
func (s *Session) Pellets() []Pellet {
	return append([]Pellet(nil), s.pellets...)
}

// Remaining counts pellets and power pellets still on the board.
func (s *Session) Remaining() (pellets, power int) {
	for _, pl := range s.pellets {
		if pl.Power {
			power++
		} else {
			pellets++
		}
	}
	return pellets, power
}

// Power returns the shared power state.
func (s *Session) Power() PowerState { return s.power }

// Score returns the accumulated points.
func (s *Session) Score() int { return s.score }

// Outcome returns the session status.
func (s *Session) Outcome() Outcome { return s.outcome }

// Elapsed returns the simulated play time.
func (s *Session) Elapsed() time.Duration { return s.elapsed }
