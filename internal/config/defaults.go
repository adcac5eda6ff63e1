package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3YAML returns the embedded default configuration file.
func DefaultMatch3YAML() []byte {
	return append([]byte(nil), defaultMatch3YAML...)
}

// DefaultMatch3Config returns the built-in configuration, used when the
// embedded file cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:          8,
			Height:         8,
			PaletteSize:    6,
			MinMatch:       3,
			MaxFillRetries: 100,
		},
		Pieces: []PieceStyle{
			{Name: "elephant", Glyph: "E", Color: "gray"},
			{Name: "giraffe", Glyph: "G", Color: "yellow"},
			{Name: "hippo", Glyph: "H", Color: "magenta"},
			{Name: "monkey", Glyph: "M", Color: "brown"},
			{Name: "panda", Glyph: "P", Color: "bright_white"},
			{Name: "parrot", Glyph: "R", Color: "bright_red"},
			{Name: "penguin", Glyph: "N", Color: "bright_blue"},
			{Name: "pig", Glyph: "I", Color: "pink"},
			{Name: "rabbit", Glyph: "B", Color: "bright_cyan"},
			{Name: "snake", Glyph: "S", Color: "bright_green"},
		},
		Pacing: PacingConfig{
			Mode:      PaceAck,
			SwapMS:    500,
			PassMS:    800,
			RefillMS:  100,
			MoveMS:    250,
			RemoveMS:  185,
			SpawnMS:   350,
			StaggerMS: 10,
		},
	}
}
