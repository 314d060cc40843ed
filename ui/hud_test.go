package ui

import "testing"

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		data HUDData
		want string
	}{
		{"running", HUDData{}, "Running"},
		{"paused", HUDData{Paused: true}, "PAUSED"},
		{"done wins over paused", HUDData{Paused: true, Done: true}, "DONE"},
		{"done with reason", HUDData{Done: true, DoneReason: "accuracy"}, "DONE: accuracy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.data); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatsLinesMinSteps(t *testing.T) {
	lines := StatsLines(HUDData{MinSteps: 200})
	if v := findLine(lines, "Min steps"); v != "-" {
		t.Errorf("min steps before arrival = %q, want -", v)
	}

	lines = StatsLines(HUDData{MinSteps: 57, HasArrived: true, Ticks: 12, Steps: 200})
	if v := findLine(lines, "Min steps"); v != "57" {
		t.Errorf("min steps = %q, want 57", v)
	}
	if v := findLine(lines, "Step"); v != "12 / 200" {
		t.Errorf("step = %q", v)
	}
}

func TestClampSpeed(t *testing.T) {
	for _, tt := range []struct{ in, max, want int }{
		{0, 10, 1},
		{5, 10, 5},
		{50, 10, 10},
	} {
		if got := ClampSpeed(tt.in, tt.max); got != tt.want {
			t.Errorf("ClampSpeed(%d, %d) = %d, want %d", tt.in, tt.max, got, tt.want)
		}
	}
}

func findLine(lines []Line, label string) string {
	for _, l := range lines {
		if l.Label == label {
			return l.Value
		}
	}
	return ""
}
