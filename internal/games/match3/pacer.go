package match3

import (
	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// Pacer spaces out cascade steps so the player can follow them.
// In ack mode a step waits until the animator is at rest, then for the
// pre-refill delay if the step is a refill. In fixed mode it waits the full
// configured delay regardless of what is on screen.
type Pacer struct {
	mode   config.PacingMode
	swap   int // Ticks after an accepted swap
	pass   int // Ticks after each clear and collapse pass
	refill int // Extra ticks before the refill
	wait   int
}

// ticksFor converts milliseconds to ticks, rounding up.
func ticksFor(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return (ms*tickRate + 999) / 1000
}

// NewPacer creates a pacer for the given configuration and tick rate.
func NewPacer(cfg config.PacingConfig, tickRate int) *Pacer {
	return &Pacer{
		mode:   cfg.Mode,
		swap:   ticksFor(cfg.SwapMS, tickRate),
		pass:   ticksFor(cfg.PassMS, tickRate),
		refill: ticksFor(cfg.RefillMS, tickRate),
	}
}

// Mode returns the pacing mode.
func (p *Pacer) Mode() config.PacingMode {
	return p.mode
}

// Schedule arms the wait before the next step. afterSwap is true for the
// first step of a cascade; next is the phase that step will run.
func (p *Pacer) Schedule(afterSwap bool, next core.Phase) {
	p.wait = 0
	if p.mode == config.PaceFixed {
		p.wait = p.pass
		if afterSwap {
			p.wait = p.swap
		}
	}
	if next == core.PhaseRefill {
		p.wait += p.refill
	}
}

// Ready reports whether the next step may run. It is called once per tick.
func (p *Pacer) Ready(animating bool) bool {
	if p.mode == config.PaceAck && animating {
		return false
	}
	if p.wait > 0 {
		p.wait--
		return false
	}
	return true
}
