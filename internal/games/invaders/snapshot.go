package invaders

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Aliens   int
	OriginX  int
	OriginY  int
	March    int
	ShipX    float64
	Shots    int
	Bombs    int
	GameOver bool
	Won      bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lives:    g.lives,
		Aliens:   g.remaining(),
		OriginX:  g.originX,
		OriginY:  g.originY,
		March:    g.march,
		ShipX:    g.shipX,
		Shots:    len(g.shots),
		Bombs:    len(g.bombs),
		GameOver: g.gameOver,
		Won:      g.won,
	}
}
