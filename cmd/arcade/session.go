package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/games/invaders"
	"github.com/vovakirdan/retro-arcade/internal/games/pacman"
	"github.com/vovakirdan/retro-arcade/internal/games/pong"
	"github.com/vovakirdan/retro-arcade/internal/games/snake"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

// setters wires --config and --difficulty into each game package.
var setters = map[string]struct {
	configPath func(string)
	preset     func(string)
}{
	"pacman":   {pacman.SetConfigPath, pacman.SetDifficultyPreset},
	"pong":     {pong.SetConfigPath, pong.SetDifficultyPreset},
	"snake":    {snake.SetConfigPath, snake.SetDifficultyPreset},
	"invaders": {invaders.SetConfigPath, invaders.SetDifficultyPreset},
}

// configureGame validates the play flags and hands them to the game package.
func configureGame(gameID, configPath, difficulty string) error {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return err
	}

	// Surface maze errors before the terminal switches to the alt screen
	if gameID == "pacman" {
		if _, _, err := pacman.Load(configPath, preset); err != nil {
			return err
		}
	}

	if s, ok := setters[gameID]; ok {
		s.configPath(configPath)
		s.preset(difficulty)
	}
	return nil
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores database unavailable, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newSounds prepares audio, degrading to silence when no device is present.
func newSounds() *audio.SoundManager {
	sounds := audio.NewSoundManager()
	if flagMute {
		sounds.SetMuted(true)
		return sounds
	}
	if err := sounds.Initialize(); err != nil {
		logger.Warn("sound unavailable", "err", err)
	}
	return sounds
}

// play runs one game to completion and logs the session summary.
func play(gameID string, cfg core.RuntimeConfig, store *storage.Store, sounds *audio.SoundManager, sessionID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Debug("session start", "game", gameID, "session", sessionID, "seed", cfg.Seed, "size", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	res, err := tui.Run(game, cfg, tui.Options{
		Store:     store,
		Sounds:    sounds,
		SessionID: sessionID,
		Logger:    logger,
	})
	if sounds != nil {
		sounds.StopMusic()
	}

	logger.Debug("session end", "game", gameID, "rounds", res.Rounds, "best", res.BestScore, "saved", res.SavedCount)
	return err
}

func newSessionID() string {
	return uuid.NewString()
}
