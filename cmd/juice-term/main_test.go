package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"

	"juice/internal/demo"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(60, 20)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newApp(log, s, demo.NewScene(demo.Config{Seed: 4})), s
}

func TestKeysTriggerActions(t *testing.T) {
	a, _ := newTestApp(t)
	if b := a.scene.Bounds(); b.W != 60*cellW || b.H != 20*cellH {
		t.Fatalf("scene bounds %+v", b)
	}
	if !a.handle(tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone)) {
		t.Fatal("rune key quit the app")
	}
	if got := a.scene.Stats().Actions[demo.ActionCoins]; got != 1 {
		t.Fatalf("coins fired %d times", got)
	}
	a.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !a.paused {
		t.Fatal("space did not pause")
	}
	if a.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape did not quit")
	}
}

func TestFrameDrawsHUD(t *testing.T) {
	a, s := newTestApp(t)
	for i := 0; i < 30; i++ {
		a.frame(1.0 / 30)
	}
	cells, w, h := s.GetContents()
	if w != 60 || h != 20 {
		t.Fatalf("screen %dx%d", w, h)
	}
	found := false
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == '$' {
			found = true
		}
	}
	if !found {
		t.Error("money counter not drawn")
	}
}
