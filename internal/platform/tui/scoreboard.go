package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

const (
	maxScores    = 100 // Rows loaded per game
	sessionWidth = 8   // Leading characters of the session ID
	chromeHeight = 10  // Title, tabs, stats, borders and help
)

var (
	accent      = lipgloss.Color("229")
	accentBg    = lipgloss.Color("57")
	dim         = lipgloss.Color("241")
	borderColor = lipgloss.Color("240")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tabStyle       = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Background(accentBg).Padding(0, 1)
	statsStyle     = lipgloss.NewStyle().Foreground(dim)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	emptyStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true).Padding(1, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Session key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Session, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Session, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Session: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "this session / all time")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows per-game high scores, all time or for the current session.
type ScoreboardModel struct {
	games       []registry.GameInfo
	cursor      int
	store       *storage.Store
	sessionID   string
	sessionOnly bool
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
}

// NewScoreboardModel creates a scoreboard. sessionID may be empty,
// in which case the session filter shows nothing.
func NewScoreboardModel(store *storage.Store, sessionID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:     registry.List(),
		store:     store,
		sessionID: sessionID,
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

// newTable sizes the score table to the window.
func (m ScoreboardModel) newTable() table.Model {
	dateWidth := min(max(m.width-4-6-10-sessionWidth-12, 11), 20)
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: dateWidth},
		{Title: "Session", Width: sessionWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeHeight, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(accent).Background(accentBg).Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches scores and stats for the selected game.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	gameID := m.currentGame()

	if m.store != nil && gameID != "" {
		if m.sessionOnly {
			m.scores, m.loadErr = m.sessionScores(gameID)
		} else {
			m.scores, m.loadErr = m.store.TopScores(gameID, maxScores)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(gameID)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
			shortSession(s.SessionID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// sessionScores returns this session's scores for one game, best first.
func (m *ScoreboardModel) sessionScores(gameID string) ([]storage.ScoreEntry, error) {
	if m.sessionID == "" {
		return nil, nil
	}
	all, err := m.store.SessionScores(m.sessionID)
	if err != nil {
		return nil, err
	}
	mine := slices.DeleteFunc(all, func(e storage.ScoreEntry) bool { return e.GameID != gameID })
	slices.SortStableFunc(mine, func(a, b storage.ScoreEntry) int { return cmp.Compare(b.Score, a.Score) })
	return mine, nil
}

// shortSession trims a session ID for display.
func shortSession(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > sessionWidth {
		return id[:sessionWidth]
	}
	return id
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.Session):
			m.sessionOnly = !m.sessionOnly
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the game selection, wrapping at both ends.
func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	scope := "ALL TIME"
	if m.sessionOnly {
		scope = "THIS SESSION"
	}

	sections := []string{
		titleStyle.Render(centerText("HIGH SCORES - "+scope, m.width)),
		centerText(m.renderTabs(), m.width),
		centerText(m.renderStats(), m.width),
		boxStyle.Render(m.renderBody()),
		statsStyle.Render(m.help.View(m.keys)),
	}
	return strings.Join(sections, "\n\n")
}

// renderTabs lists the games with the selected one highlighted.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 && len(m.games) > 0 {
		return fmt.Sprintf("< %s >", m.games[m.cursor].Title)
	}
	return line
}

// renderStats summarizes the selected game.
func (m ScoreboardModel) renderStats() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return statsStyle.Render("no games recorded")
	}
	s := m.stats
	return statsStyle.Render(fmt.Sprintf("played %d  sessions %d  best %d  avg %.1f",
		s.GamesCount, s.Sessions, s.HighScore, s.AvgScore))
}

func (m ScoreboardModel) renderBody() string {
	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores database unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0 && m.sessionOnly:
		return emptyStyle.Render("No scores this session yet.")
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, sessionID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, sessionID, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
