package core

import "time"

// MaxFrameDelta bounds the elapsed time fed into a single Step.
const MaxFrameDelta = 50 * time.Millisecond

// ClampDelta limits dt to [0, MaxFrameDelta].
func ClampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDelta returns the nominal duration of one tick.
func (c RuntimeConfig) TickDelta() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended (lost or won)
	Won      bool // Set together with GameOver when the player cleared the game
	Paused   bool
}

// Event is a notable gameplay moment emitted by Step.
// The platform turns events into sound effects.
type Event int

const (
	EventNone Event = iota
	EventPellet
	EventPowerUp
	EventEnemyDestroyed
	EventShot
	EventBounce
	EventPoint
	EventDeath
	EventCleared
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventPellet:
		return "pellet"
	case EventPowerUp:
		return "power_up"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventShot:
		return "shot"
	case EventBounce:
		return "bounce"
	case EventPoint:
		return "point"
	case EventDeath:
		return "death"
	case EventCleared:
		return "cleared"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
