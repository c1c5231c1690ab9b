// Package pacman implements the maze-chase game: a static wall map, a
// player agent and pursuers that chase or flee depending on a shared
// power timer. Session holds the rules; Game adapts it to the platform.
package pacman

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Glyphs. Every maze cell is drawn two columns wide.
const (
	wallGlyph    = '█'
	pelletGlyph  = '·'
	powerGlyph   = '●'
	pursuerGlyph = 'Ω'
	closedGlyph  = 'O'
	hudHeight    = 2
	colsPerCell  = 2
)

var pursuerColors = []core.Color{core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange}

var flashColors = [flashFrames]core.Color{core.ColorBlue, core.ColorWhite, core.ColorYellow}

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

// Load resolves the configuration and parses its maze.
// The CLI calls it before starting so layout errors reach the user.
func Load(path string, preset config.DifficultyPreset) (config.PacmanConfig, *Maze, error) {
	cfg, err := config.LoadPacman(path)
	if err != nil {
		return cfg, nil, err
	}
	config.ApplyPreset(&cfg.Difficulty, preset)

	m, err := ParseMaze(cfg.Maze.Layout, cfg.Maze.CellSize)
	if err != nil {
		return cfg, nil, fmt.Errorf("pacman: config maze: %w", err)
	}
	return cfg, m, nil
}

// TuningFrom converts a loaded configuration into session tuning.
func TuningFrom(cfg config.PacmanConfig) Tuning {
	return Tuning{
		PlayerSize:       cfg.Player.Size,
		PlayerSpeed:      cfg.Player.Speed,
		PursuerSize:      cfg.Pursuers.Size,
		PursuerSpeed:     cfg.Pursuers.Speed,
		SpeedVariation:   cfg.Pursuers.SpeedVariation,
		PowerDuration:    time.Duration(cfg.Power.Duration * float64(time.Second)),
		PelletValue:      cfg.Scoring.Pellet,
		PowerPelletValue: cfg.Scoring.PowerPellet,
		PursuerValue:     cfg.Scoring.Pursuer,
	}
}

// Game adapts a Session to the registry contract.
type Game struct {
	runtime    core.RuntimeConfig
	tuning     Tuning
	maze       *Maze
	session    *Session
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	loadErr    error
	paused     bool
	tick       uint64
}

// New creates a new Pac-Man game instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("pacman", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "pacman" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pac-Man" }

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, m, err := Load(configPath, difficultyPreset)
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultPacmanConfig()
		m = mustDefaultMaze(cfg.Maze.CellSize)
	}

	g.tuning = TuningFrom(cfg)
	g.maze = m
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.restart(runtime.Seed)
}

// LoadErr returns the configuration error from the last Reset, if any.
// A failed load falls back to the built-in maze and tuning.
func (g *Game) LoadErr() error { return g.loadErr }

// mustDefaultMaze parses the built-in layout, which is fixed at compile time.
func mustDefaultMaze(cellSize float64) *Maze {
	m, err := ParseMaze(config.DefaultPacmanLayout, cellSize)
	if err != nil {
		panic(fmt.Sprintf("pacman: built-in maze: %v", err))
	}
	return m
}

// ResetWith starts a session on an explicit maze and tuning, bypassing config files.
func (g *Game) ResetWith(runtime core.RuntimeConfig, m *Maze, t Tuning) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tuning = t
	g.maze = m
	g.loadErr = nil
	g.difficulty = config.NewDifficultyManager(config.DifficultyConfig{})
	g.restart(runtime.Seed)
}

func (g *Game) restart(seed int64) {
	g.session = NewSession(g.maze, g.tuning, seed)
	g.paused = false
	g.tick = 0
}

// Step advances the game by dt.
func (g *Game) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	p1 := in.Player1()
	g.tick++

	if p1.Has(core.ActionRestart) {
		g.restart(g.rng.Int63())
		return core.StepResult{State: g.State()}
	}

	if g.session.Outcome() != OutcomePlaying {
		return core.StepResult{State: g.State()}
	}

	if p1.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.session.SetSpeedScale(g.difficulty.Speed(1, g.session.Score(), g.session.Elapsed()))
	events := g.session.Step(dt, directionFrom(p1))

	return core.StepResult{State: g.State(), Events: events}
}

// directionFrom maps actions to a heading. Later checks win when several are held.
func directionFrom(f core.InputFrame) Direction {
	d := DirNone
	if f.Has(core.ActionUp) {
		d = DirUp
	}
	if f.Has(core.ActionDown) {
		d = DirDown
	}
	if f.Has(core.ActionLeft) {
		d = DirLeft
	}
	if f.Has(core.ActionRight) {
		d = DirRight
	}
	return d
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	out := g.session.Outcome()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: out != OutcomePlaying,
		Won:      out == OutcomeCleared,
		Paused:   g.paused,
	}
}

// Session exposes the running session.
func (g *Game) Session() *Session { return g.session }

// Render draws the maze, agents, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	m := g.maze
	boardW := m.Cols() * colsPerCell
	if dst.Width() < boardW || dst.Height() < m.Rows()+hudHeight {
		dst.DrawOverlay("Window too small", fmt.Sprintf("Need %dx%d", boardW, m.Rows()+hudHeight))
		return
	}
	v := viewport{
		offX:     (dst.Width() - boardW) / 2,
		offY:     hudHeight,
		cellSize: m.CellSize(),
		cols:     m.Cols(),
		rows:     m.Rows(),
	}

	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols(); col++ {
			if m.At(Cell{Col: col, Row: row}) == CellWall {
				x := v.offX + col*colsPerCell
				dst.SetColor(x, v.offY+row, wallGlyph, core.ColorBlue)
				dst.SetColor(x+1, v.offY+row, wallGlyph, core.ColorBlue)
			}
		}
	}

	for _, pl := range g.session.Pellets() {
		x := v.offX + pl.Cell.Col*colsPerCell + 1
		if pl.Power {
			dst.SetColor(x, v.offY+pl.Cell.Row, powerGlyph, core.ColorYellow)
		} else {
			dst.SetColor(x, v.offY+pl.Cell.Row, pelletGlyph, core.ColorWhite)
		}
	}

	flee := g.session.Power().Vulnerable()
	for _, p := range g.session.Pursuers() {
		color := pursuerColors[p.Slot()%len(pursuerColors)]
		if flee {
			color = flashColors[p.FlashFrame()]
		}
		if x, y, ok := v.project(p.Bounds()); ok {
			dst.SetColor(x, y, pursuerGlyph, color)
		}
	}

	player := g.session.Player()
	if x, y, ok := v.project(player.Bounds()); ok {
		color := core.ColorYellow
		if !player.Alive() {
			color = core.ColorRed
		}
		dst.SetColor(x, y, playerGlyph(player), color)
	}

	switch g.session.Outcome() {
	case OutcomeDead:
		dst.DrawOverlay("GAME OVER!", fmt.Sprintf("Final Score: %d", g.session.Score()), "", "Press R to Restart")
	case OutcomeCleared:
		dst.DrawOverlay("YOU WIN!", fmt.Sprintf("Final Score: %d", g.session.Score()), "", "Press R to Restart")
	default:
		if g.paused {
			dst.DrawOverlay("PAUSED", "Press P to continue")
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", g.session.Score()), core.ColorBrightWhite)

	if power := g.session.Power(); power.Vulnerable() {
		text := fmt.Sprintf("POWER UP: %.1fs", power.Remaining().Seconds())
		dst.DrawTextColor(dst.Width()-len(text)-1, 0, text, core.ColorYellow)
	} else {
		pellets, powers := g.session.Remaining()
		text := fmt.Sprintf("Pellets: %d", pellets+powers)
		dst.DrawTextColor(dst.Width()-len(text)-1, 0, text, core.ColorGray)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// playerGlyph draws the mouth opening toward the heading.
func playerGlyph(p Player) rune {
	if !p.MouthOpen() {
		return closedGlyph
	}
	switch p.Direction() {
	case DirLeft:
		return '>'
	case DirUp:
		return 'V'
	case DirDown:
		return '^'
	default:
		return '<'
	}
}

// viewport maps world units to screen cells.
type viewport struct {
	offX, offY int
	cellSize   float64
	cols, rows int
}

// project returns the screen cell under the box centre, or false when the
// box is outside the board (mid-wrap).
func (v viewport) project(box core.RectF) (int, int, bool) {
	c := box.Center()
	col := int(math.Floor(c.X / v.cellSize * colsPerCell))
	row := int(math.Floor(c.Y / v.cellSize))
	if col < 0 || col >= v.cols*colsPerCell || row < 0 || row >= v.rows {
		return 0, 0, false
	}
	return v.offX + col, v.offY + row, true
}
