package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultPacmanLayout is the built-in 20x20 maze.
// X wall, . pellet, P power pellet, S player start, G pursuer start, space empty.
var DefaultPacmanLayout = []string{
	"XXXXXXXX.XXXXXXXXXXX",
	"XS...X......X......X",
	"X.XX.X.XXXX.X.XXXX.X",
	"X.P..............P.X",
	"X.XXXX.X.XX.X.XXXX.X",
	"X......X....X......X",
	"X.XXXX.X.XX.X.XXXX.X",
	"X..................X",
	"XX.XX.XXXXXX.XX.XXGX",
	".......G.P..........",
	"XX.XX.XXXXXX.XX.XXGX",
	"X..................X",
	"X.XXXX.X.XX.X.XXXX.X",
	"X......X....X......X",
	"X.XXXX.X.XX.X.XXXX.X",
	"X.P  ..........  P.X",
	"X.X.XX.XXXX.XXX.XXXX",
	"XGX.XX.X..X.....X..X",
	"X ...........XX    X",
	"XXXXXXXX.XXXXXXXXXXX",
}

// DefaultPacmanConfig returns the default Pac-Man configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Maze: PacmanMaze{
			CellSize: 40,
			Layout:   append([]string(nil), DefaultPacmanLayout...),
		},
		Player: PacmanAgent{
			Size:  30,
			Speed: 120,
		},
		Pursuers: PacmanPursuers{
			Size:           36,
			Speed:          72,
			SpeedVariation: 0.1,
		},
		Scoring: PacmanScoring{
			Pellet:      10,
			PowerPellet: 50,
			Pursuer:     200,
		},
		Power: PacmanPower{
			Duration: 5.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:    30,
			PaddleSpeed:  40,
			SpeedUp:      1.1,
			MaxBallSpeed: 90,
		},
		Paddles: PongPaddles{
			Height: 5,
			Offset: 2,
		},
		Gameplay: PongGameplay{
			WinScore:   5,
			ServeDelay: 1.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 600, // 10 minutes
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Gameplay: SnakeGameplay{
			MovesPerSecond: 10,
			FoodPoints:     10,
			InitialLength:  3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 0.4,
			},
		},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Aliens: InvadersAliens{
			Rows:       5,
			Cols:       10,
			MarchEvery: 0.5,
			Drop:       1,
			FireChance: 0.01,
			ShotSpeed:  15,
		},
		Player: InvadersPlayer{
			Lives:     3,
			Speed:     30,
			ShotSpeed: 40,
			Cooldown:  0.3,
		},
		Scoring: InvadersScoring{
			Alien: 10,
		},
		Stars: 40,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.6,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML for a game, or nil if none exists.
func DefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
