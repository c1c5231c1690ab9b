package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// Options carries the services a running game talks to. Every field is optional.
type Options struct {
	Store     *storage.Store
	Sounds    *audio.SoundManager
	SessionID string
	Logger    *log.Logger
}

// Result summarizes a finished play session.
type Result struct {
	Rounds     int // Rounds that reached game over
	BestScore  int
	SavedCount int
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     *InputState
	gameState core.GameState
	clock     *frameClock
	result    *Result
	quitting  bool
	// Whether the score has been saved for the current game over
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	players := 1
	if mp, ok := game.(registry.MultiPlayer); ok {
		players = mp.Players()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   NewKeyMapper(players),
		input:  NewInputState(),
		clock:  newFrameClock(cfg.TickDelta()),
		result: &Result{},
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.opts.Sounds != nil {
		m.opts.Sounds.StartMusic()
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	b, ok, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		if m.opts.Sounds != nil {
			m.opts.Sounds.StopMusic()
		}
		return m, tea.Quit
	}
	if ok {
		m.input.Press(b, time.Now())
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Re-layout only while there is no progress to lose
	if m.gameState.Score == 0 && !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.clock.Restart()
	}

	return m, nil
}

// handleTick advances the simulation by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.input.Frame(now), m.clock.Advance(now))
	m.gameState = result.State

	if m.opts.Sounds != nil {
		m.opts.Sounds.PlayAll(result.Events)
	}

	// A new round began
	if prev.GameOver && !m.gameState.GameOver {
		m.scoreSaved = false
		m.input.Reset()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRound()
	}

	m.syncMusic()

	return m, tickCmd(m.config.TickRate)
}

// finishRound records the final score once per game over.
func (m *Model) finishRound() {
	m.scoreSaved = true
	m.result.Rounds++
	score := m.gameState.Score
	m.result.BestScore = max(m.result.BestScore, score)

	if score <= 0 || m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.SessionID, score); err != nil {
		if m.opts.Logger != nil {
			m.opts.Logger.Error("save score", "game", m.game.ID(), "err", err)
		}
		return
	}
	m.result.SavedCount++
}

// syncMusic keeps the loop running only during live play.
func (m *Model) syncMusic() {
	if m.opts.Sounds == nil {
		return
	}
	live := !m.gameState.GameOver && !m.gameState.Paused
	playing := m.opts.Sounds.MusicPlaying()
	switch {
	case live && !playing:
		m.opts.Sounds.StartMusic()
	case !live && playing:
		m.opts.Sounds.StopMusic()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("screenshot", "path", path, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Result returns the session summary collected so far.
func (m Model) Result() Result {
	return *m.result
}

// Run plays the game until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (Result, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		return m.Result(), err
	}
	return model.Result(), err
}
