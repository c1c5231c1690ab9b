package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default -> fallback
// Every file is decoded on top of fallback, so keys it leaves out keep their defaults.
func load[T any](gameID, customPath string, fallback func() T) (T, error) {
	filename := gameID + ".yaml"

	// A custom path is explicit, so its errors are surfaced
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, fallback)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := parseFile(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	if cfg, ok := parseFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	if data := DefaultYAML(gameID); data != nil {
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}
	return fallback(), nil
}

// decode overlays YAML data on a fresh default value.
func decode[T any](data []byte, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), err
	}
	return cfg, nil
}

// parseFile reads and decodes a YAML file, reporting false on any failure.
func parseFile[T any](path string, fallback func() T) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback(), false
	}
	cfg, err := decode(data, fallback)
	if err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadPacman loads Pac-Man configuration.
func LoadPacman(customPath string) (PacmanConfig, error) {
	cfg, err := load("pacman", customPath, DefaultPacmanConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Maze.Layout) == 0 {
		cfg.Maze.Layout = append([]string(nil), DefaultPacmanLayout...)
	}
	return cfg, nil
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// LoadInvaders loads Space Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return load("invaders", customPath, DefaultInvadersConfig)
}

// ApplyPreset modifies a difficulty block based on a preset.
// The empty preset leaves the loaded values untouched.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Aliens.FireChance = 0.005
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Aliens.FireChance = 0.02
	}
}
