package pong

// Snapshot contains the complete state of a Pong match.
// Velocities are scaled by 1000 so the snapshot compares exactly.
type Snapshot struct {
	Tick     uint64
	BallX    int
	BallY    int
	BallVX   int
	BallVY   int
	Paddle1Y int
	Paddle2Y int
	Score1   int
	Score2   int
	GameOver bool
	Winner   int // 0=none, 1=Player1, 2=Player2
	Serving  bool
}

// Snapshot returns the current match state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		BallX:    int(g.ballX),
		BallY:    int(g.ballY),
		BallVX:   int(g.ballVX * 1000),
		BallVY:   int(g.ballVY * 1000),
		Paddle1Y: int(g.paddleY[0]),
		Paddle2Y: int(g.paddleY[1]),
		Score1:   g.score[0],
		Score2:   g.score[1],
		GameOver: g.gameOver,
		Winner:   g.winner,
		Serving:  g.serving,
	}
}
