package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/gadots/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v round-tripped to %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClampsAndRecomputes(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Defaults()

	pv.ApplyToConfig(cfg, []float64{5, 30})
	if cfg.Evolution.MutationRate != 0.1 {
		t.Errorf("mutation rate = %v, want clamped 0.1", cfg.Evolution.MutationRate)
	}
	if cfg.Evolution.StepSize != 30 {
		t.Errorf("step size = %v, want 30", cfg.Evolution.StepSize)
	}
	// Start (400, 100) to goal (400, 640) is 540 units.
	if cfg.Derived.MinPossibleSteps != 18 {
		t.Errorf("min possible steps = %d, want 18", cfg.Derived.MinPossibleSteps)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 0.1 || got[1] != 30 {
		t.Errorf("extracted %v", got)
	}
}

func TestLoss(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 100, nil, config.Defaults())

	tests := []struct {
		name string
		r    runResult
		want float64
	}{
		{"perfect early", runResult{accuracy: 1, firstArrival: 1}, 0.001},
		{"half at 50", runResult{accuracy: 0.5, firstArrival: 50}, 0.55},
		{"never arrived", runResult{}, 1.101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fe.loss(tt.r); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("loss = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(95e9); got != "1m35s" {
		t.Errorf("formatDuration(95s) = %q", got)
	}
	if got := formatDuration(3725e9); got != "1h02m05s" {
		t.Errorf("formatDuration(3725s) = %q", got)
	}
}
