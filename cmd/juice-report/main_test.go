package main

import (
	"bytes"
	"strings"
	"testing"

	"juice/internal/canvas"
	"juice/internal/demo"
)

func TestRunScenarioDeterministic(t *testing.T) {
	a := runScenario(1, 99, 600, 1.0/60)
	b := runScenario(1, 99, 600, 1.0/60)
	if a != b {
		t.Fatalf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
	if a.ops[canvas.OpText] == 0 || a.peakOps == 0 {
		t.Fatalf("nothing rendered: %+v", a)
	}
	if a.scene.Frames != 600 {
		t.Fatalf("Frames = %d, want 600", a.scene.Frames)
	}
}

func TestSummarize(t *testing.T) {
	all := []runStats{
		{money: 100, scene: demo.Stats{PeakParticles: 40}},
		{money: 300, scene: demo.Stats{PeakParticles: 90}},
	}
	mean, peak := summarize(all)
	if mean != 200 || peak != 90 {
		t.Fatalf("summarize = %v, %d; want 200, 90", mean, peak)
	}
	if m, p := summarize(nil); m != 0 || p != 0 {
		t.Fatalf("empty summarize = %v, %d", m, p)
	}
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	printRun(&buf, runScenario(2, 7, 120, 1.0/60))
	out := buf.String()
	for _, want := range []string{"--- run 2 seed=7 frames=120 ---", "money=", "peak particles"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
