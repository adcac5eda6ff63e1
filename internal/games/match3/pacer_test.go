package match3

import (
	"testing"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/match3/core"
)

func TestTicksFor(t *testing.T) {
	tests := []struct {
		ms, rate, want int
	}{
		{500, 60, 30},
		{185, 60, 12},
		{100, 60, 6},
		{10, 60, 1},
		{0, 60, 0},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := ticksFor(tt.ms, tt.rate); got != tt.want {
			t.Errorf("ticksFor(%d, %d) = %d, expected %d", tt.ms, tt.rate, got, tt.want)
		}
	}
}

// readyAfter counts the ticks until Ready returns true.
func readyAfter(p *Pacer, animating bool) int {
	for n := 0; n < 1000; n++ {
		if p.Ready(animating) {
			return n
		}
	}
	return -1
}

func TestPacerFixed(t *testing.T) {
	p := NewPacer(config.PacingConfig{
		Mode:     config.PaceFixed,
		SwapMS:   100,
		PassMS:   50,
		RefillMS: 50,
	}, 60)

	tests := []struct {
		name      string
		afterSwap bool
		next      core.Phase
		want      int
	}{
		{"swap then pass", true, core.PhasePass, 6},
		{"pass then pass", false, core.PhasePass, 3},
		{"pass then refill", false, core.PhaseRefill, 6},
		{"swap then refill", true, core.PhaseRefill, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Schedule(tt.afterSwap, tt.next)
			// Fixed pacing ignores the animator.
			if got := readyAfter(p, true); got != tt.want {
				t.Errorf("ready after %d ticks, expected %d", got, tt.want)
			}
		})
	}
}

func TestPacerAck(t *testing.T) {
	p := NewPacer(config.PacingConfig{
		Mode:     config.PaceAck,
		SwapMS:   500,
		PassMS:   200,
		RefillMS: 100,
	}, 60)
	if p.Mode() != config.PaceAck {
		t.Errorf("Mode() = %q", p.Mode())
	}

	tests := []struct {
		name      string
		afterSwap bool
		next      core.Phase
		want      int
	}{
		{"swap then pass", true, core.PhasePass, 0},
		{"pass then pass", false, core.PhasePass, 0},
		{"pass then refill", false, core.PhaseRefill, 6},
		{"swap then refill", true, core.PhaseRefill, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Schedule(tt.afterSwap, tt.next)
			for i := 0; i < 20; i++ {
				if p.Ready(true) {
					t.Fatalf("ack pacing should wait for the animator")
				}
			}
			// The refill delay only starts counting once the animator is idle.
			if got := readyAfter(p, false); got != tt.want {
				t.Errorf("ready after %d ticks, expected %d", got, tt.want)
			}
		})
	}
}
