// Package config provides YAML-based configuration loading and
// difficulty presets for match3.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/match3/internal/core"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// MinPaletteSize is the smallest palette that keeps refills satisfiable.
// A refilled cell is checked in all four directions, so three types can
// leave it with nothing that fits.
const MinPaletteSize = 4

// Match3Config contains all configuration for a match3 board.
type Match3Config struct {
	Board  BoardConfig  `yaml:"board"`
	Pieces []PieceStyle `yaml:"pieces"`
	Pacing PacingConfig `yaml:"pacing"`
}

// BoardConfig defines the board geometry and fill rules.
type BoardConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	PaletteSize    int `yaml:"palette_size"`
	MinMatch       int `yaml:"min_match"`
	MaxFillRetries int `yaml:"max_fill_retries"`
}

// PieceStyle describes how one piece type is drawn.
type PieceStyle struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// PacingMode selects how the presentation paces a cascade.
type PacingMode string

const (
	// PaceAck waits for the animations of each step to finish.
	PaceAck PacingMode = "ack"
	// PaceFixed waits the configured per-phase delay.
	PaceFixed PacingMode = "fixed"
)

// PacingConfig holds the presentation timings in milliseconds.
type PacingConfig struct {
	Mode      PacingMode `yaml:"mode"`
	SwapMS    int        `yaml:"swap_ms"`
	PassMS    int        `yaml:"pass_ms"`
	RefillMS  int        `yaml:"refill_ms"`
	MoveMS    int        `yaml:"move_ms"`
	RemoveMS  int        `yaml:"remove_ms"`
	SpawnMS   int        `yaml:"spawn_ms"`
	StaggerMS int        `yaml:"stagger_ms"`
}

// Duration converts a millisecond setting to a time.Duration.
func Duration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Palette returns the piece styles in play.
func (c Match3Config) Palette() []PieceStyle {
	n := min(c.Board.PaletteSize, len(c.Pieces))
	if n < 0 {
		n = 0
	}
	return c.Pieces[:n]
}

// Validate checks the configuration for values the engine cannot use.
func (c Match3Config) Validate() error {
	b := c.Board
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("%w: board size %dx%d", ErrInvalid, b.Width, b.Height)
	case b.PaletteSize < MinPaletteSize:
		return fmt.Errorf("%w: palette_size %d, need at least %d", ErrInvalid, b.PaletteSize, MinPaletteSize)
	case b.PaletteSize > len(c.Pieces):
		return fmt.Errorf("%w: palette_size %d but only %d pieces defined", ErrInvalid, b.PaletteSize, len(c.Pieces))
	case b.MinMatch < 2:
		return fmt.Errorf("%w: min_match %d", ErrInvalid, b.MinMatch)
	case b.MaxFillRetries < 1:
		return fmt.Errorf("%w: max_fill_retries %d", ErrInvalid, b.MaxFillRetries)
	}

	for i, p := range c.Pieces {
		if utf8.RuneCountInString(p.Glyph) != 1 {
			return fmt.Errorf("%w: piece %d (%s) glyph %q must be one character", ErrInvalid, i, p.Name, p.Glyph)
		}
		if _, err := core.ParseColor(p.Color); err != nil {
			return fmt.Errorf("%w: piece %d (%s): %v", ErrInvalid, i, p.Name, err)
		}
	}

	switch c.Pacing.Mode {
	case PaceAck, PaceFixed:
	default:
		return fmt.Errorf("%w: pacing mode %q", ErrInvalid, c.Pacing.Mode)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means fixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyFixed, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// PaletteSizeForPreset returns the number of piece types for a preset.
// Fewer types make matches more likely. Fixed returns 0: keep the file's value.
func PaletteSizeForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 4
	case DifficultyNormal:
		return 6
	case DifficultyHard:
		return 8
	default:
		return 0
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if n := PaletteSizeForPreset(preset); n > 0 {
		cfg.Board.PaletteSize = min(n, len(cfg.Pieces))
	}
}
