// Package invaders implements Space Invaders: a marching alien formation,
// a ship on the bottom row and shots travelling in both directions.
package invaders

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Glyphs. Aliens and the ship are three cells wide.
const (
	alienGlyph   = "<o>"
	shipGlyph    = "/^\\"
	shotGlyph    = '|'
	bombGlyph    = '!'
	glyphWidth   = 3
	alienSpacing = 4 // Columns between formation columns
	rowSpacing   = 2
	hudHeight    = 2
	formationTop = hudHeight + 1
	twinkle      = 300 * time.Millisecond

	// fireFrame is the frame length FireChance is quoted for.
	fireFrame = time.Second / 30
)

var rowColors = []core.Color{core.ColorMagenta, core.ColorCyan, core.ColorCyan, core.ColorGreen, core.ColorGreen}

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

// shot is a projectile in flight. Player shots move up, bombs move down.
type shot struct {
	x  int
	y  float64
	vy float64
}

// star is a background point that blinks on its own phase.
type star struct {
	x, y  int
	phase int
}

// Game implements Space Invaders.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	// Formation: alive[row][col], positioned by its top-left origin
	alive    [][]bool
	originX  int
	originY  int
	march    int // +1 right, -1 left
	marchFor time.Duration

	shipX    float64
	shipY    int
	cooldown time.Duration
	lives    int

	shots []shot
	bombs []shot
	stars []star

	score    int
	elapsed  time.Duration
	tick     uint64
	gameOver bool
	won      bool
	paused   bool
	tooSmall bool
}

// New creates a new Space Invaders game.
func New() *Game {
	return &Game{cfg: config.DefaultInvadersConfig()}
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "invaders" }

// Title returns the display name.
func (g *Game) Title() string { return "Space Invaders" }

// Reset loads configuration and starts a new wave.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	config.ApplyInvadersPreset(&cfg, difficultyPreset)
	g.ResetWith(runtime, cfg)
}

// ResetWith starts a new wave with an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.InvadersConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.restart()
}

func (g *Game) formationWidth() int {
	return (g.cfg.Aliens.Cols-1)*alienSpacing + glyphWidth
}

func (g *Game) restart() {
	g.score = 0
	g.elapsed = 0
	g.tick = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.shots = nil
	g.bombs = nil
	g.lives = g.cfg.Player.Lives

	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	g.tooSmall = w < g.formationWidth()+2 || h < formationTop+g.cfg.Aliens.Rows*rowSpacing+4
	if g.tooSmall {
		return
	}

	g.alive = make([][]bool, g.cfg.Aliens.Rows)
	for r := range g.alive {
		g.alive[r] = make([]bool, g.cfg.Aliens.Cols)
		for c := range g.alive[r] {
			g.alive[r][c] = true
		}
	}
	g.originX = (w - g.formationWidth()) / 2
	g.originY = formationTop
	g.march = 1
	g.marchFor = 0

	g.shipY = h - 2
	g.centerShip()

	g.stars = g.stars[:0]
	for range g.cfg.Stars {
		g.stars = append(g.stars, star{
			x:     g.rng.Intn(w),
			y:     hudHeight + g.rng.Intn(h-hudHeight),
			phase: g.rng.Intn(3),
		})
	}
}

func (g *Game) centerShip() {
	g.shipX = float64(g.runtime.ScreenW-glyphWidth) / 2
	g.cooldown = 0
}

// alienAt returns the screen cell of a formation slot.
func (g *Game) alienAt(row, col int) (int, int) {
	return g.originX + col*alienSpacing, g.originY + row*rowSpacing
}

// remaining counts live aliens.
func (g *Game) remaining() int {
	n := 0
	for _, row := range g.alive {
		for _, a := range row {
			if a {
				n++
			}
		}
	}
	return n
}

// Step advances the game by dt.
func (g *Game) Step(in core.MultiInputFrame, dt time.Duration) core.StepResult {
	input := in.Player1()

	if input.Has(core.ActionRestart) {
		g.rng = rand.New(rand.NewSource(g.rng.Int63()))
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.elapsed += dt
	secs := dt.Seconds()
	var events []core.Event

	// Ship
	if input.Has(core.ActionLeft) {
		g.shipX -= g.cfg.Player.Speed * secs
	}
	if input.Has(core.ActionRight) {
		g.shipX += g.cfg.Player.Speed * secs
	}
	g.shipX = core.ClampF(g.shipX, 0, float64(g.runtime.ScreenW-glyphWidth))

	g.cooldown -= dt
	if input.Has(core.ActionFire) && g.cooldown <= 0 {
		g.shots = append(g.shots, shot{x: int(g.shipX) + 1, y: float64(g.shipY - 1), vy: -g.cfg.Player.ShotSpeed})
		g.cooldown = time.Duration(g.cfg.Player.Cooldown * float64(time.Second))
		events = append(events, core.EventShot)
	}

	// Formation
	g.marchFor += dt
	interval := g.difficulty.Interval(time.Duration(g.cfg.Aliens.MarchEvery*float64(time.Second)), g.score, g.elapsed)
	for g.marchFor >= interval && interval > 0 {
		g.marchFor -= interval
		g.advanceFormation()
	}

	if g.rng.Float64() < fireChance(g.cfg.Aliens.FireChance, dt) {
		g.dropBomb()
	}

	events = append(events, g.moveShots(secs)...)

	switch {
	case g.gameOver:
	case g.remaining() == 0:
		g.won = true
		events = append(events, core.EventCleared)
	case g.invaded():
		g.gameOver = true
		events = append(events, core.EventDeath)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// fireChance converts a per-fireFrame probability into one for a frame of length dt.
func fireChance(perFrame float64, dt time.Duration) float64 {
	if perFrame <= 0 || dt <= 0 {
		return 0
	}
	if perFrame >= 1 {
		return 1
	}
	return 1 - math.Pow(1-perFrame, float64(dt)/float64(fireFrame))
}

// advanceFormation steps the formation sideways, or drops and turns at an edge.
func (g *Game) advanceFormation() {
	left, right := g.aliveSpan()
	if left < 0 {
		return
	}
	minX := g.originX + left*alienSpacing + g.march
	maxX := g.originX + right*alienSpacing + glyphWidth - 1 + g.march
	if minX < 0 || maxX >= g.runtime.ScreenW {
		g.originY += g.cfg.Aliens.Drop
		g.march = -g.march
		return
	}
	g.originX += g.march
}

// aliveSpan returns the leftmost and rightmost columns with a live alien, or -1, -1.
func (g *Game) aliveSpan() (int, int) {
	left, right := -1, -1
	for _, row := range g.alive {
		for c, a := range row {
			if !a {
				continue
			}
			if left < 0 || c < left {
				left = c
			}
			if c > right {
				right = c
			}
		}
	}
	return left, right
}

// dropBomb fires from a random live alien.
func (g *Game) dropBomb() {
	n := g.remaining()
	if n == 0 {
		return
	}
	pick := g.rng.Intn(n)
	for r, row := range g.alive {
		for c, a := range row {
			if !a {
				continue
			}
			if pick == 0 {
				x, y := g.alienAt(r, c)
				speed := g.difficulty.Speed(g.cfg.Aliens.ShotSpeed, g.score, g.elapsed)
				g.bombs = append(g.bombs, shot{x: x + 1, y: float64(y + 1), vy: speed})
				return
			}
			pick--
		}
	}
}

// moveShots advances projectiles and resolves their hits.
func (g *Game) moveShots(secs float64) []core.Event {
	var events []core.Event

	kept := g.shots[:0]
	for _, s := range g.shots {
		from := int(s.y)
		s.y += s.vy * secs
		if s.y < hudHeight {
			continue
		}
		if g.hitAlien(s.x, int(s.y), from) {
			g.score += g.cfg.Scoring.Alien
			events = append(events, core.EventEnemyDestroyed)
			continue
		}
		kept = append(kept, s)
	}
	g.shots = kept

	keptBombs := g.bombs[:0]
	hit := false
	for _, b := range g.bombs {
		from := int(b.y)
		b.y += b.vy * secs
		if from <= g.shipY && int(b.y) >= g.shipY && b.x >= int(g.shipX) && b.x < int(g.shipX)+glyphWidth {
			hit = true
			continue
		}
		if b.y >= float64(g.runtime.ScreenH) {
			continue
		}
		keptBombs = append(keptBombs, b)
	}
	g.bombs = keptBombs

	if hit {
		g.lives--
		events = append(events, core.EventDeath)
		g.bombs = nil
		if g.lives <= 0 {
			g.gameOver = true
		} else {
			g.centerShip()
		}
	}
	return events
}

// hitAlien kills the first live alien in column x between rows top and bottom.
// The range covers every row the shot crossed this frame.
func (g *Game) hitAlien(x, top, bottom int) bool {
	for r := len(g.alive) - 1; r >= 0; r-- {
		for c := range g.alive[r] {
			if !g.alive[r][c] {
				continue
			}
			ax, ay := g.alienAt(r, c)
			if ay >= top && ay <= bottom && x >= ax && x < ax+glyphWidth {
				g.alive[r][c] = false
				return true
			}
		}
	}
	return false
}

// invaded reports whether any live alien reached the ship's row.
func (g *Game) invaded() bool {
	for r, row := range g.alive {
		for c, a := range row {
			if !a {
				continue
			}
			if _, y := g.alienAt(r, c); y >= g.shipY {
				return true
			}
		}
	}
	return false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)
	lives := fmt.Sprintf("Lives: %d", g.lives)
	dst.DrawTextColor(dst.Width()-len(lives)-1, 0, lives, core.ColorBrightRed)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if g.tooSmall {
		dst.DrawOverlay("Window too small", "Resize to continue")
		return
	}

	frame := int(g.elapsed / twinkle)
	for _, s := range g.stars {
		switch (frame + s.phase) % 3 {
		case 0:
			dst.SetColor(s.x, s.y, '.', core.ColorGray)
		case 1:
			dst.SetColor(s.x, s.y, '*', core.ColorWhite)
		}
	}

	for r, row := range g.alive {
		for c, a := range row {
			if !a {
				continue
			}
			x, y := g.alienAt(r, c)
			dst.DrawTextColor(x, y, alienGlyph, rowColors[r%len(rowColors)])
		}
	}

	for _, s := range g.shots {
		dst.SetColor(s.x, int(s.y), shotGlyph, core.ColorBrightYellow)
	}
	for _, b := range g.bombs {
		dst.SetColor(b.x, int(b.y), bombGlyph, core.ColorRed)
	}

	if !g.gameOver {
		dst.DrawTextColor(int(g.shipX), g.shipY, shipGlyph, core.ColorBrightGreen)
	}

	switch {
	case g.won:
		dst.DrawOverlay("YOU WIN!", fmt.Sprintf("Final Score: %d", g.score), "", "Press R to Restart")
	case g.gameOver:
		dst.DrawOverlay("GAME OVER!", fmt.Sprintf("Final Score: %d", g.score), "", "Press R to Restart")
	case g.paused:
		dst.DrawOverlay("PAUSED", "Press P to continue")
	}
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
