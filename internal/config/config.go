// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"fmt"
	"strings"
)

// PacmanConfig contains all configuration for the Pac-Man game.
// Distances are world units; one maze cell is Maze.CellSize units wide.
type PacmanConfig struct {
	Maze       PacmanMaze       `yaml:"maze"`
	Player     PacmanAgent      `yaml:"player"`
	Pursuers   PacmanPursuers   `yaml:"pursuers"`
	Scoring    PacmanScoring    `yaml:"scoring"`
	Power      PacmanPower      `yaml:"power"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanMaze defines the board. An empty layout selects the built-in maze.
type PacmanMaze struct {
	CellSize float64  `yaml:"cell_size"`
	Layout   []string `yaml:"layout"`
}

// PacmanAgent defines size and speed of a moving agent.
type PacmanAgent struct {
	Size  float64 `yaml:"size"`  // Box edge length
	Speed float64 `yaml:"speed"` // Units per second
}

// PacmanPursuers defines pursuer parameters.
type PacmanPursuers struct {
	Size           float64 `yaml:"size"`
	Speed          float64 `yaml:"speed"`
	SpeedVariation float64 `yaml:"speed_variation"` // Each pursuer gets speed * (1 + U[0, variation))
}

// PacmanScoring defines points per consumable.
type PacmanScoring struct {
	Pellet      int `yaml:"pellet"`
	PowerPellet int `yaml:"power_pellet"`
	Pursuer     int `yaml:"pursuer"`
}

// PacmanPower defines the vulnerability window.
type PacmanPower struct {
	Duration float64 `yaml:"duration"` // Seconds
}

// PongConfig contains all configuration for the two-player Pong game.
// Distances are screen cells, speeds are cells per second.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines ball and paddle motion.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	SpeedUp      float64 `yaml:"speed_up"` // Ball speed factor per paddle hit
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Height int `yaml:"height"`
	Offset int `yaml:"offset"` // Distance from the side wall
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore   int     `yaml:"win_score"`
	ServeDelay float64 `yaml:"serve_delay"` // Seconds before the ball moves after a point
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Gameplay   SnakeGameplay    `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGameplay defines snake pacing and scoring.
type SnakeGameplay struct {
	MovesPerSecond float64 `yaml:"moves_per_second"`
	FoodPoints     int     `yaml:"food_points"`
	InitialLength  int     `yaml:"initial_length"`
}

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Aliens     InvadersAliens   `yaml:"aliens"`
	Player     InvadersPlayer   `yaml:"player"`
	Scoring    InvadersScoring  `yaml:"scoring"`
	Stars      int              `yaml:"stars"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// InvadersAliens defines the alien formation.
type InvadersAliens struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	MarchEvery float64 `yaml:"march_every"` // Seconds between formation steps
	Drop       int     `yaml:"drop"`        // Rows dropped at an edge
	FireChance float64 `yaml:"fire_chance"` // Probability that some alien fires, per 1/30 s
	ShotSpeed  float64 `yaml:"shot_speed"`  // Cells per second
}

// InvadersPlayer defines the player ship.
type InvadersPlayer struct {
	Lives     int     `yaml:"lives"`
	Speed     float64 `yaml:"speed"`      // Cells per second
	ShotSpeed float64 `yaml:"shot_speed"` // Cells per second
	Cooldown  float64 `yaml:"cooldown"`   // Seconds between shots
}

// InvadersScoring defines points per kill.
type InvadersScoring struct {
	Alien int `yaml:"alien"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction cut from intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(name)); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
