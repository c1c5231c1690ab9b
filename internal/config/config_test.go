package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// isolate points the user config lookup at an empty home directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestEmbeddedDefaultsMatchGoDefaults(t *testing.T) {
	isolate(t)

	pac, err := LoadPacman("")
	if err != nil {
		t.Fatalf("LoadPacman: %v", err)
	}
	if !reflect.DeepEqual(pac, DefaultPacmanConfig()) {
		t.Errorf("embedded pacman.yaml differs from DefaultPacmanConfig:\n%+v\n%+v", pac, DefaultPacmanConfig())
	}

	pong, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if !reflect.DeepEqual(pong, DefaultPongConfig()) {
		t.Errorf("embedded pong.yaml differs from DefaultPongConfig")
	}

	snake, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake: %v", err)
	}
	if !reflect.DeepEqual(snake, DefaultSnakeConfig()) {
		t.Errorf("embedded snake.yaml differs from DefaultSnakeConfig")
	}

	inv, err := LoadInvaders("")
	if err != nil {
		t.Fatalf("LoadInvaders: %v", err)
	}
	if !reflect.DeepEqual(inv, DefaultInvadersConfig()) {
		t.Errorf("embedded invaders.yaml differs from DefaultInvadersConfig")
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "pac.yaml")
	data := []byte(`
maze:
  cell_size: 20
  layout:
    - "XXXX"
    - "XS.X"
    - "XXXX"
player:
  speed: 60
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPacman(path)
	if err != nil {
		t.Fatalf("LoadPacman: %v", err)
	}
	if cfg.Maze.CellSize != 20 || cfg.Player.Speed != 60 {
		t.Errorf("custom values not applied: %+v", cfg)
	}
	if len(cfg.Maze.Layout) != 3 || cfg.Maze.Layout[1] != "XS.X" {
		t.Errorf("layout = %q", cfg.Maze.Layout)
	}
}

func TestLoadCustomPathKeepsDefaultMaze(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "pac.yaml")
	if err := os.WriteFile(path, []byte("power:\n  duration: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPacman(path)
	if err != nil {
		t.Fatalf("LoadPacman: %v", err)
	}
	if !reflect.DeepEqual(cfg.Maze.Layout, DefaultPacmanLayout) {
		t.Error("missing layout should fall back to the built-in maze")
	}
	if cfg.Power.Duration != 8 {
		t.Errorf("Power.Duration = %v, expected 8", cfg.Power.Duration)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("gameplay: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestUserConfigOverridesEmbedded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pong.yaml"), []byte("gameplay:\n  win_score: 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if cfg.Gameplay.WinScore != 11 {
		t.Errorf("WinScore = %d, expected 11 from user config", cfg.Gameplay.WinScore)
	}

	want := DefaultPongConfig()
	want.Gameplay.WinScore = 11
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("keys missing from the file should keep defaults:\n%+v\n%+v", cfg, want)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	d := DefaultPacmanConfig().Difficulty

	ApplyPreset(&d, "")
	if d.Enabled {
		t.Error("empty preset should leave config untouched")
	}

	ApplyPreset(&d, DifficultyHard)
	if !d.Enabled || d.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", d)
	}

	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset should disable progression")
	}

	inv := DefaultInvadersConfig()
	ApplyInvadersPreset(&inv, DifficultyEasy)
	if inv.Player.Lives != 5 {
		t.Errorf("easy invaders lives = %d, expected 5", inv.Player.Lives)
	}
}

func TestDifficultyManagerLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, IntervalReduction: 0.5},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %f, expected %f", tc.score, got, tc.expected)
		}
	}

	dm.SetInitialLevel(0)
	if got := dm.Speed(10, 100, 0); got != 20 {
		t.Errorf("Speed at max = %f, expected 20", got)
	}
	if got := dm.Interval(time.Second, 100, 0); got != 500*time.Millisecond {
		t.Errorf("Interval at max = %v, expected 500ms", got)
	}
}

func TestDifficultyManagerTimeAndDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
	})
	if got := dm.Level(0, 30*time.Second); got != 0.5 {
		t.Errorf("Level at 30s = %f, expected 0.5", got)
	}

	dm.SetEnabled(false)
	dm.SetInitialLevel(0.4)
	if got := dm.Level(1000, time.Hour); got != 0.4 {
		t.Errorf("disabled Level = %f, expected initial 0.4", got)
	}
	if dm.IsEnabled() {
		t.Error("IsEnabled should be false")
	}
}
