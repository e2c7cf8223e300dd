package demo

import (
	"strings"
	"testing"

	"juice/internal/canvas"
	"juice/internal/fx"
)

const frame = 1.0 / 60

func run(s *Scene, seconds float64) {
	for n := int(seconds / frame); n > 0; n-- {
		s.Update(frame)
	}
}

func TestSceneDeterministic(t *testing.T) {
	a := NewScene(Config{Seed: 42, Script: true})
	b := NewScene(Config{Seed: 42, Script: true})
	ra := canvas.NewRecorder(canvas.XYWH(0, 0, DefaultWidth, DefaultHeight), false)
	rb := canvas.NewRecorder(canvas.XYWH(0, 0, DefaultWidth, DefaultHeight), false)
	for i := 0; i < 900; i++ {
		a.Update(frame)
		b.Update(frame)
		if i%60 == 0 {
			ra.Reset()
			rb.Reset()
			a.Render(ra)
			b.Render(rb)
			if ra.Summary() != rb.Summary() {
				t.Fatalf("frame %d: render %q != %q", i, ra.Summary(), rb.Summary())
			}
		}
	}
	if a.Stats() != b.Stats() {
		t.Fatalf("stats diverged:\n%s\nvs\n%s", a.Stats(), b.Stats())
	}
	if a.Money() != b.Money() {
		t.Fatalf("money %d != %d", a.Money(), b.Money())
	}
}

func TestScriptFiresEveryEffectOncePerLoop(t *testing.T) {
	s := NewScene(Config{Seed: 7, Script: true})
	run(s, 29.9)

	st := s.Stats()
	want := map[Action]int{
		ActionCoins:     3,
		ActionConfetti:  2,
		ActionFireworks: 2,
		ActionWeather:   5,
		ActionVignette:  2,
		ActionClear:     0,
	}
	for _, a := range Actions() {
		n, ok := want[a]
		if !ok {
			n = 1
		}
		if st.Actions[a] != n {
			t.Errorf("action %s fired %d times, want %d", a, st.Actions[a], n)
		}
	}
	if s.Weather() != fx.WeatherClear {
		t.Errorf("weather %s after a full loop, want clear", s.Weather())
	}
	if s.Money() == 0 {
		t.Error("no coins arrived during the script")
	}
	if st.PeakParticles == 0 || st.TotalEvents() == 0 {
		t.Errorf("peak %d events %d, want both non-zero", st.PeakParticles, st.TotalEvents())
	}
}

func TestScriptLoops(t *testing.T) {
	s := NewScene(Config{Seed: 7, Script: true, Loop: 1.8})
	run(s, 4.6)
	// Coins at 0.5 fire on each pass; shockwave at 2.0 is past the loop end.
	if got := s.Stats().Actions[ActionCoins]; got != 3 {
		t.Errorf("coins fired %d times, want 3", got)
	}
	if got := s.Stats().Actions[ActionShockwave]; got != 0 {
		t.Errorf("shockwave fired %d times past the loop end", got)
	}
}

func TestCoinsPayIntoCounter(t *testing.T) {
	s := NewScene(Config{Seed: 3})
	arrived := 0
	s.Bus.Subscribe(fx.EventCoinArrived, func(fx.Event) { arrived++ })
	batches := 0
	s.Bus.SubscribeAll(func(evs []fx.Event) {
		if len(evs) == 0 {
			t.Error("empty batch delivered")
		}
		batches++
	})

	s.Trigger(ActionCoins)
	run(s, 3)

	if arrived < 5 || arrived > 10 {
		t.Fatalf("%d coins arrived, want 5..10", arrived)
	}
	if s.Money() != arrived*CoinValue {
		t.Errorf("money %d, want %d", s.Money(), arrived*CoinValue)
	}
	if batches == 0 {
		t.Error("SubscribeAll never called")
	}
	if s.Stats().Events[fx.EventCoinArrived] != arrived {
		t.Errorf("stats counted %d arrivals, bus saw %d", s.Stats().Events[fx.EventCoinArrived], arrived)
	}
}

func TestTriggerIgnoresUnknownAction(t *testing.T) {
	s := NewScene(Config{})
	s.Trigger(-1)
	s.Trigger(actionCount)
	if s.Stats() != (Stats{}) {
		t.Fatalf("stats changed: %+v", s.Stats())
	}
	if s.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", s.Live())
	}
}

func TestClearEmptiesEngines(t *testing.T) {
	s := NewScene(Config{Seed: 9})
	for _, a := range []Action{ActionCoins, ActionConfetti, ActionFireworks, ActionCelebration, ActionCeremony} {
		s.Trigger(a)
	}
	s.Update(frame)
	if s.Live() == 0 {
		t.Fatal("nothing spawned")
	}
	s.Trigger(ActionClear)
	if s.Live() != 0 {
		t.Fatalf("Live() = %d after clear", s.Live())
	}
}

func TestResize(t *testing.T) {
	s := NewScene(Config{})
	if s.Bounds() != canvas.XYWH(0, 0, DefaultWidth, DefaultHeight) {
		t.Fatalf("default bounds %+v", s.Bounds())
	}
	s.Resize(400, 300)
	if s.Bounds() != canvas.XYWH(0, 0, 400, 300) {
		t.Fatalf("bounds %+v after resize", s.Bounds())
	}
	s.Resize(0, 300)
	s.Resize(400, -1)
	if s.Bounds() != canvas.XYWH(0, 0, 400, 300) {
		t.Fatalf("invalid resize applied: %+v", s.Bounds())
	}
}

func TestRenderDrawsHUD(t *testing.T) {
	s := NewScene(Config{Seed: 1})
	s.Trigger(ActionCoins)
	run(s, 3)

	rec := canvas.NewRecorder(s.Bounds(), true)
	s.Render(rec)
	if rec.Depth() != 0 {
		t.Errorf("transform stack depth %d after render", rec.Depth())
	}
	var label string
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpText && strings.HasPrefix(op.Text, "$") {
			label = op.Text
		}
	}
	if label == "" || label == "$0" {
		t.Fatalf("counter label %q", label)
	}
}

func TestUpdateIgnoresBadDT(t *testing.T) {
	s := NewScene(Config{Script: true})
	s.Update(0)
	s.Update(-1)
	if s.Stats().Frames != 0 {
		t.Fatalf("Frames = %d, want 0", s.Stats().Frames)
	}
}

func TestActionKeys(t *testing.T) {
	if len(Keys) != int(actionCount) {
		t.Fatalf("%d keys for %d actions", len(Keys), actionCount)
	}
	for i, r := range Keys {
		a, ok := ForKey(r)
		if !ok || a != Action(i) {
			t.Errorf("ForKey(%q) = %v, %v", r, a, ok)
		}
		p, ok := ParseAction(a.String())
		if !ok || p != a {
			t.Errorf("ParseAction(%q) = %v, %v", a, p, ok)
		}
	}
	if _, ok := ForKey('z'); ok {
		t.Error("ForKey('z') matched")
	}
	if got := strings.Count(Help(), "\n"); got != int(actionCount) {
		t.Errorf("Help has %d lines", got)
	}
}

func TestStatsReport(t *testing.T) {
	s := NewScene(Config{Seed: 2})
	s.Trigger(ActionFireworks)
	run(s, 1)
	out := s.Stats().String()
	for _, want := range []string{"frames", "peak particles", "event burst", "action fireworks"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
