package pacman

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Score      int
	Outcome    string
	PlayerX    float64
	PlayerY    float64
	PlayerDir  Direction
	Pursuers   []PursuerSnapshot
	Pellets    int
	PowerLeft  int64 // Nanoseconds
	Vulnerable bool
	Paused     bool
}

// PursuerSnapshot is the captured state of one pursuer.
type PursuerSnapshot struct {
	X, Y float64
	Dir  Direction
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	p := s.Player()

	snap := Snapshot{
		Tick:       g.tick,
		Score:      s.Score(),
		Outcome:    s.Outcome().String(),
		PlayerX:    p.Position().X,
		PlayerY:    p.Position().Y,
		PlayerDir:  p.Direction(),
		Pellets:    len(s.Pellets()),
		PowerLeft:  int64(s.Power().Remaining()),
		Vulnerable: s.Power().Vulnerable(),
		Paused:     g.paused,
	}
	for _, q := range s.Pursuers() {
		pos := q.Position()
		snap.Pursuers = append(snap.Pursuers, PursuerSnapshot{X: pos.X, Y: pos.Y, Dir: q.Direction()})
	}
	return snap
}
