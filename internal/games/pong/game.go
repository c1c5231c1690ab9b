// Package pong implements two-player local Pong.
// Player 1 drives the left paddle with W/S, player 2 the right paddle with the arrow keys.
package pong

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

// spin is the share of ball speed added vertically by an off-centre paddle hit.
const spin = 0.5

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game implements the Pong game logic.
type Game struct {
	// Paddle tops, index 0 is the left seat
	paddleY [2]float64

	// Ball, in screen cells and cells per second
	ballX  float64
	ballY  float64
	ballVX float64
	ballVY float64

	score    [2]int
	gameOver bool
	paused   bool
	winner   int // 1 or 2
	serving  bool
	serveFor time.Duration // Remaining serve pause

	runtime    core.RuntimeConfig
	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	elapsed    time.Duration
	tick       uint64
}

// New creates a new Pong game instance.
func New() *Game {
	return &Game{cfg: config.DefaultPongConfig()}
}

func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Players reports the number of local seats.
func (g *Game) Players() int {
	return 2
}

// Reset loads configuration and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadPong(configPath)
	if err != nil {
		cfg = config.DefaultPongConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	g.ResetWith(runtime, cfg)
}

// ResetWith starts a new match with an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.PongConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.cfg.Paddles.Height = core.Clamp(cfg.Paddles.Height, 1, max(1, runtime.ScreenH-3))
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.restart()
}

func (g *Game) restart() {
	top := float64(g.runtime.ScreenH-g.cfg.Paddles.Height) / 2
	g.paddleY = [2]float64{top, top}
	g.score = [2]int{}
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.elapsed = 0
	g.tick = 0

	toward := 1
	if g.rng.Intn(2) == 1 {
		toward = 2
	}
	g.startServe(toward)
}

// startServe centres the ball and aims it at the given seat.
func (g *Game) startServe(toward int) {
	g.serving = true
	g.serveFor = time.Duration(g.cfg.Gameplay.ServeDelay * float64(time.Second))

	g.ballX = float64(g.runtime.ScreenW) / 2
	g.ballY = float64(g.runtime.ScreenH) / 2

	speed := g.difficulty.Speed(g.cfg.Physics.BallSpeed, 0, g.elapsed)
	g.ballVX = speed
	if toward == 1 {
		g.ballVX = -speed
	}
	g.ballVY = speed * (g.rng.Float64() - 0.5) * 0.6
}

// Step advances the match by dt.
func (g *Game) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	if in.Any(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.elapsed += dt
	secs := dt.Seconds()

	g.movePaddle(0, in.Player1(), secs)
	g.movePaddle(1, in.Player2(), secs)

	if g.serving {
		g.serveFor -= dt
		if g.serveFor > 0 {
			return core.StepResult{State: g.State()}
		}
		g.serving = false
	}

	events := g.updateBall(secs)
	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) movePaddle(seat int, f core.InputFrame, secs float64) {
	step := g.cfg.Physics.PaddleSpeed * secs
	if f.Has(core.ActionUp) {
		g.paddleY[seat] -= step
	}
	if f.Has(core.ActionDown) {
		g.paddleY[seat] += step
	}
	maxY := float64(g.runtime.ScreenH - g.cfg.Paddles.Height - 1)
	g.paddleY[seat] = core.ClampF(g.paddleY[seat], 1, math.Max(1, maxY))
}

// leftEdge and rightEdge are the columns the ball bounces from.
func (g *Game) leftEdge() float64 {
	return float64(g.cfg.Paddles.Offset + 1)
}

func (g *Game) rightEdge() float64 {
	return float64(g.runtime.ScreenW - g.cfg.Paddles.Offset - 1)
}

// onPaddle reports whether row y lies within the seat's paddle.
func (g *Game) onPaddle(seat int, y float64) bool {
	top := math.Floor(g.paddleY[seat])
	return y >= top && y < top+float64(g.cfg.Paddles.Height)
}

// updateBall moves the ball and resolves walls, paddles and points.
// A paddle hit needs the ball to cross the paddle face this frame.
func (g *Game) updateBall(secs float64) []core.Event {
	var events []core.Event

	prevX := g.ballX
	g.ballX += g.ballVX * secs
	g.ballY += g.ballVY * secs

	bottom := float64(g.runtime.ScreenH - 2)
	if g.ballY <= 1 {
		g.ballY = 1
		g.ballVY = math.Abs(g.ballVY)
		events = append(events, core.EventBounce)
	} else if g.ballY >= bottom {
		g.ballY = bottom
		g.ballVY = -math.Abs(g.ballVY)
		events = append(events, core.EventBounce)
	}

	if g.ballVX < 0 && prevX >= g.leftEdge() && g.ballX <= g.leftEdge() && g.onPaddle(0, g.ballY) {
		g.ballX = g.leftEdge()
		g.hitPaddle(0)
		events = append(events, core.EventBounce)
	}
	if g.ballVX > 0 && prevX <= g.rightEdge() && g.ballX >= g.rightEdge() && g.onPaddle(1, g.ballY) {
		g.ballX = g.rightEdge()
		g.hitPaddle(1)
		events = append(events, core.EventBounce)
	}

	switch {
	case g.ballX < 0:
		events = append(events, g.point(1)...)
	case g.ballX > float64(g.runtime.ScreenW):
		events = append(events, g.point(0)...)
	}
	return events
}

// hitPaddle reverses the ball, speeds it up and adds spin from the contact point.
func (g *Game) hitPaddle(seat int) {
	g.ballVX = -g.ballVX * g.cfg.Physics.SpeedUp
	hit := (g.ballY-math.Floor(g.paddleY[seat]))/float64(g.cfg.Paddles.Height) - 0.5
	g.ballVY += hit * math.Abs(g.ballVX) * spin
	g.ballVY *= g.cfg.Physics.SpeedUp

	if limit := g.cfg.Physics.MaxBallSpeed; limit > 0 {
		if speed := math.Hypot(g.ballVX, g.ballVY); speed > limit {
			g.ballVX *= limit / speed
			g.ballVY *= limit / speed
		}
	}
}

// point credits the seat and either serves again or ends the match.
func (g *Game) point(seat int) []core.Event {
	g.score[seat]++
	if g.score[seat] >= g.cfg.Gameplay.WinScore {
		g.gameOver = true
		g.winner = seat + 1
		return []core.Event{core.EventPoint, core.EventCleared}
	}
	// The seat that conceded receives the serve
	g.startServe(2 - seat)
	return []core.Event{core.EventPoint}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColor(centerX, y, NetChar, core.ColorGray)
	}

	leftX := g.cfg.Paddles.Offset
	rightX := dst.Width() - g.cfg.Paddles.Offset - 1
	for i := range g.cfg.Paddles.Height {
		dst.SetColor(leftX, int(g.paddleY[0])+i, PaddleChar, core.ColorCyan)
		dst.SetColor(rightX, int(g.paddleY[1])+i, PaddleChar, core.ColorMagenta)
	}

	// Blink during serve
	if !g.serving || (g.serveFor/(100*time.Millisecond))%2 == 0 {
		dst.SetColor(int(g.ballX), int(g.ballY), BallChar, core.ColorBrightWhite)
	}

	dst.DrawTextColor(centerX-5, 0, fmt.Sprintf("%d", g.score[0]), core.ColorCyan)
	dst.DrawTextColor(centerX+4, 0, fmt.Sprintf("%d", g.score[1]), core.ColorMagenta)
	dst.DrawText(1, 0, "P1 W/S")
	dst.DrawText(dst.Width()-7, 0, "P2 ↑/↓")

	switch {
	case g.gameOver:
		dst.DrawOverlay(
			fmt.Sprintf("PLAYER %d WINS!", g.winner),
			fmt.Sprintf("%d - %d", g.score[0], g.score[1]),
			"",
			"Press R to Restart",
		)
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press P to continue")
	}
}

// State returns the current game state. Score follows the left seat.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score[0],
		GameOver: g.gameOver,
		Won:      g.winner == 1,
		Paused:   g.paused,
	}
}

// Winner returns 1 or 2 once the match is over, otherwise 0.
func (g *Game) Winner() int {
	return g.winner
}
