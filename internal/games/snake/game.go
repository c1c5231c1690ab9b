// Package snake implements grid Snake in a walled arena that fills the screen.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// opposite reports whether two directions cancel out.
func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

const (
	hudHeight = 2
	minWidth  = 20
	minHeight = 10
)

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

// Game implements the Snake game.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64
	score      int
	elapsed    time.Duration
	moveClock  time.Duration // Time banked toward the next move

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move

	// Arena, border cells are walls
	mapWidth  int
	mapHeight int
	walls     map[Point]bool
	food      Point

	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{cfg: config.DefaultSnakeConfig()}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset loads configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	g.ResetWith(runtime, cfg)
}

// ResetWith starts a new game with an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.SnakeConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.restart()
}

func (g *Game) restart() {
	g.tick = 0
	g.score = 0
	g.elapsed = 0
	g.moveClock = 0
	g.gameOver = false
	g.won = false
	g.paused = false

	g.mapWidth = g.runtime.ScreenW
	g.mapHeight = g.runtime.ScreenH - hudHeight
	g.tooSmall = g.mapWidth < minWidth || g.mapHeight < minHeight
	if g.tooSmall {
		return
	}

	g.walls = make(map[Point]bool)
	for x := range g.mapWidth {
		g.walls[Point{X: x, Y: 0}] = true
		g.walls[Point{X: x, Y: g.mapHeight - 1}] = true
	}
	for y := range g.mapHeight {
		g.walls[Point{X: 0, Y: y}] = true
		g.walls[Point{X: g.mapWidth - 1, Y: y}] = true
	}

	g.initSnake()
	g.spawnFood()
}

// initSnake lays the snake out horizontally, heading right, left of centre.
func (g *Game) initSnake() {
	length := max(1, g.cfg.Gameplay.InitialLength)
	headX := max(length, g.mapWidth/4+length-1)
	y := g.mapHeight / 2

	g.snake = g.snake[:0]
	for i := range length {
		g.snake = append(g.snake, Point{X: headX - i, Y: y})
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnFood places food on a random free cell. A full board wins the game.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := 1; y < g.mapHeight-1; y++ {
		for x := 1; x < g.mapWidth-1; x++ {
			p := Point{X: x, Y: y}
			if !g.walls[p] && !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		g.food = Point{X: -1, Y: -1}
		g.won = true
		return
	}
	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// moveInterval is the time between moves at the current difficulty.
func (g *Game) moveInterval() time.Duration {
	base := time.Duration(float64(time.Second) / max(g.cfg.Gameplay.MovesPerSecond, 1))
	return g.difficulty.Interval(base, g.score, g.elapsed)
}

// Step advances the game by dt.
func (g *Game) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	input := in.Player1()
	g.tick++

	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.rng = rand.New(rand.NewSource(g.rng.Int63()))
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) || input.Has(core.ActionFire) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	g.elapsed += dt
	g.moveClock += dt

	var events []core.Event
	for interval := g.moveInterval(); g.moveClock >= interval; interval = g.moveInterval() {
		g.moveClock -= interval
		if e := g.moveSnake(); e != core.EventNone {
			events = append(events, e)
		}
		if g.gameOver || g.won {
			break
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// processInput buffers a direction change. Reversal onto the neck is ignored.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	if !newDir.opposite(g.direction) {
		g.nextDir = newDir
	}
}

// moveSnake moves the snake one cell and reports what happened.
func (g *Game) moveSnake() core.Event {
	if len(g.snake) == 0 {
		return core.EventNone
	}

	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head
	switch g.direction {
	case DirUp:
		newHead.Y--
	case DirDown:
		newHead.Y++
	case DirLeft:
		newHead.X--
	case DirRight:
		newHead.X++
	}

	if g.walls[newHead] || newHead.X < 0 || newHead.X >= g.mapWidth ||
		newHead.Y < 0 || newHead.Y >= g.mapHeight {
		g.gameOver = true
		return core.EventDeath
	}

	eating := newHead == g.food

	// The tail vacates its cell this move unless the snake grows
	checkLen := len(g.snake)
	if !eating {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.gameOver = true
			return core.EventDeath
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)
	if !eating {
		g.snake = g.snake[:len(g.snake)-1]
		return core.EventNone
	}

	g.score += g.cfg.Gameplay.FoodPoints
	g.spawnFood()
	if g.won {
		return core.EventCleared
	}
	return core.EventPellet
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", minWidth, minHeight+hudHeight))
		return
	}

	for wall := range g.walls {
		dst.SetColor(wall.X, hudHeight+wall.Y, '#', core.ColorGray)
	}

	for i, seg := range g.snake {
		if i == 0 {
			dst.SetColor(seg.X, hudHeight+seg.Y, 'O', core.ColorBrightGreen)
		} else {
			dst.SetColor(seg.X, hudHeight+seg.Y, 'o', core.ColorGreen)
		}
	}

	if g.food.X >= 0 {
		dst.SetColor(g.food.X, hudHeight+g.food.Y, '*', core.ColorRed)
	}

	switch {
	case g.won:
		dst.DrawOverlay("YOU WIN!", fmt.Sprintf("Final Score: %d", g.score), "", "Press R to Restart")
	case g.gameOver:
		dst.DrawOverlay("GAME OVER!", fmt.Sprintf("Final Score: %d", g.score), "", "Press R to Restart")
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press Space or P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Snake  Score: %d  Length: %d", g.score, len(g.snake)), core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused,
	}
}
