package fx

import (
	"testing"
	"unicode/utf8"

	"juice/internal/canvas"
)

func TestTimelineReportsEntries(t *testing.T) {
	tl := NewTimeline(1,
		Phase{Name: "a", Start: 0, End: 0.2},
		Phase{Name: "b", Start: 0.25, End: 0.5},
		Phase{Name: "c", Start: 0.9, End: 1},
	)
	if got := tl.Advance(0.1); got != 1 {
		t.Errorf("first Advance = %03b, want 001", got)
	}
	if got := tl.Advance(0.1); got != 0 {
		t.Errorf("second Advance = %03b, want 000", got)
	}
	if got := tl.Advance(0.1); got != 2 {
		t.Errorf("third Advance = %03b, want 010", got)
	}
	if p := tl.Progress(1); !near(p, 0.2, 1e-9) {
		t.Errorf("Progress(1) = %v, want 0.2", p)
	}
	if got := tl.Advance(1); got != 4 || !tl.Done() {
		t.Errorf("final Advance = %03b, Done %v", got, tl.Done())
	}
	tl.Restart()
	if tl.Elapsed() != 0 || tl.Done() {
		t.Error("Restart did not rewind")
	}
	if got := tl.Advance(0.01); got != 1 {
		t.Errorf("Advance after Restart = %03b, want 001", got)
	}
}

func TestCeremonyInactiveAfterDurationWithEmptyPools(t *testing.T) {
	c := NewCeremony(1)
	c.Start(CeremonyMilestone, "100 Shops", "A retail empire")
	for c.Elapsed() < 3.9 {
		c.Update(0.05)
	}
	c.confetti.Clear()
	c.fw.Clear()
	for c.Active() && c.Elapsed() < 4.01 {
		c.Update(0.01)
	}
	if c.Elapsed() < CeremonyDuration {
		t.Fatalf("ceremony ended early at %v", c.Elapsed())
	}
	if c.Len() != 0 {
		t.Fatalf("pools refilled after the rocket window: %d", c.Len())
	}
	if c.Active() {
		t.Errorf("ceremony active at %v with empty pools", c.Elapsed())
	}
}

func TestCeremonyWaitsForParticles(t *testing.T) {
	c := NewCeremony(3)
	c.SetBounds(640, 480)
	c.Start(CeremonyRecord, "Record day", "")
	for i := 0; i < 2000 && c.Active(); i++ {
		c.Update(1.0 / 60)
		if c.Len() > 0 && !c.Active() {
			t.Fatalf("deactivated at %v with %d particles", c.Elapsed(), c.Len())
		}
	}
	if c.Active() {
		t.Fatal("ceremony never finished")
	}
	if c.Len() != 0 {
		t.Errorf("inactive with %d particles", c.Len())
	}
	if c.Elapsed() < CeremonyDuration {
		t.Errorf("finished at %v, before the timeline", c.Elapsed())
	}
}

func TestCeremonyPhaseEvents(t *testing.T) {
	c := NewCeremony(5)
	c.Start(CeremonyAward, "Best Bakery", "Downtown")
	var phases []int
	bursts := 0
	for c.Active() && c.Elapsed() < CeremonyDuration+1 {
		c.Update(1.0 / 60)
		for _, ev := range c.Events() {
			switch ev.Type {
			case EventCeremonyPhase:
				phases = append(phases, ev.Value)
			case EventBurst:
				bursts++
			}
		}
	}
	want := []int{PhaseBackdrop, PhaseScaleIn, PhaseTextReveal, PhaseFadeOut}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
	if bursts < 2 {
		t.Errorf("bursts = %d, want at least the opening volley", bursts)
	}
}

func TestCeremonyRender(t *testing.T) {
	c := NewCeremony(2)
	bounds := canvas.XYWH(0, 0, 800, 600)
	rec := canvas.NewRecorder(bounds, true)
	c.Render(rec, bounds)
	if rec.Total() != 0 {
		t.Fatalf("idle ceremony drew %d ops", rec.Total())
	}

	c.Start(CeremonyOpening, "Grand Opening", "Harbor Mall")
	for c.Elapsed() < 1.5 {
		c.Update(0.02)
	}
	c.Render(rec, bounds)
	var title, subtitle bool
	for _, op := range rec.Ops {
		if op.Kind != canvas.OpText {
			continue
		}
		title = title || op.Text == "Grand Opening"
		subtitle = subtitle || op.Text == "Harbor Mall"
	}
	if !title || !subtitle {
		t.Errorf("title drawn %v, subtitle drawn %v", title, subtitle)
	}
	if rec.Depth() != 0 {
		t.Errorf("transform depth %d", rec.Depth())
	}
}

func TestCeremonyClearCancels(t *testing.T) {
	c := NewCeremony(9)
	c.Start(CeremonyMilestone, "x", "y")
	c.Update(0.1)
	c.Clear()
	c.Clear()
	if c.Active() || c.Len() != 0 {
		t.Errorf("Active %v Len %d after Clear", c.Active(), c.Len())
	}
}

func TestCeremonyAccentByKind(t *testing.T) {
	seen := map[canvas.Color]CeremonyKind{}
	for k := CeremonyMilestone; k <= CeremonyRecord; k++ {
		if prev, dup := seen[k.Accent()]; dup {
			t.Errorf("%v and %v share an accent", prev, k)
		}
		seen[k.Accent()] = k
	}
}

func TestRevealPrefix(t *testing.T) {
	s := "Café №1"
	for i := 0; i <= 20; i++ {
		p := revealPrefix(s, float64(i)/20)
		if len(p) > len(s) || s[:len(p)] != p {
			t.Fatalf("revealPrefix = %q, not a prefix", p)
		}
		for _, r := range p {
			if r == utf8.RuneError {
				t.Fatalf("revealPrefix(%v) cut a rune: %q", float64(i)/20, p)
			}
		}
	}
	if revealPrefix(s, 1) != s {
		t.Error("full reveal differs")
	}
}

func TestCelebrationSequence(t *testing.T) {
	c := NewCelebration(4)
	c.SetBounds(800, 600)
	c.SetCounter(740, 30)
	c.Start("Payday", 500, 300, 320)

	arrivals, done := 0, 0
	drewLabel := false
	rec := canvas.NewRecorder(canvas.XYWH(0, 0, 800, 600), true)
	for i := 0; i < 600 && c.Active(); i++ {
		c.Update(1.0 / 60)
		for _, ev := range c.Events() {
			switch ev.Type {
			case EventCoinArrived:
				arrivals++
				if ev.X != 740 || ev.Y != 30 {
					t.Errorf("coin arrived at (%v,%v)", ev.X, ev.Y)
				}
			case EventCelebrationDone:
				done++
				if ev.Value != 500 {
					t.Errorf("done value = %d, want 500", ev.Value)
				}
			}
		}
		if i == 60 {
			c.Render(rec, canvas.XYWH(0, 0, 800, 600))
			for _, op := range rec.Ops {
				if op.Kind == canvas.OpText && op.Text == "+500" {
					drewLabel = true
				}
			}
		}
	}
	if c.Active() {
		t.Fatal("celebration never finished")
	}
	if arrivals != CelebrationCoins {
		t.Errorf("arrivals = %d, want %d", arrivals, CelebrationCoins)
	}
	if done != 1 {
		t.Errorf("done events = %d, want 1", done)
	}
	if !drewLabel {
		t.Error("+500 label never drawn")
	}
}

func TestCelebrationNegativeAmountLabel(t *testing.T) {
	c := NewCelebration(1)
	c.Start("Loss", -75, 0, 0)
	if c.label != "-75" {
		t.Errorf("label = %q, want -75", c.label)
	}
}
