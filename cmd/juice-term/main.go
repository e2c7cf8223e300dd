// Command juice-term runs the showcase scene in a terminal with tcell,
// two pixels per cell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"juice/internal/canvas"
	"juice/internal/cue"
	"juice/internal/demo"
	"juice/internal/termcanvas"
)

// Logical size of one terminal cell.
const (
	cellW = 8.0
	cellH = 16.0
)

type app struct {
	log    *slog.Logger
	screen tcell.Screen
	scene  *demo.Scene
	cv     *termcanvas.Canvas
	paused bool
}

func newApp(log *slog.Logger, screen tcell.Screen, scene *demo.Scene) *app {
	a := &app{log: log, screen: screen, scene: scene, cv: termcanvas.New()}
	a.resize()
	return a
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	a.scene.Resize(float64(cols)*cellW, float64(rows)*cellH)
}

// handle returns false when the user asked to quit.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		if ev.Rune() == ' ' {
			a.paused = !a.paused
			return true
		}
		if act, ok := demo.ForKey(ev.Rune()); ok {
			a.log.Debug("trigger", "action", act)
			a.scene.Trigger(act)
		}
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	}
	return true
}

func (a *app) frame(dt float64) {
	if !a.paused {
		a.scene.Update(dt)
	}
	cols, rows := a.screen.Size()
	a.cv.Begin(cols, rows, a.scene.Bounds(), canvas.Palette.Backdrop)
	a.scene.Render(a.cv)
	a.cv.End()
	a.cv.Present(a.screen)
	a.screen.Show()
}

func (a *app) run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.frame(dt)
		}
	}
}

func main() {
	fps := flag.Int("fps", 30, "frames per second")
	manual := flag.Bool("manual", false, "disable the scripted loop; keys only")
	sound := flag.Bool("sound", false, "play audio cues")
	flag.Parse()

	// The terminal owns the tty while running; log to a file only when
	// asked.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("JUICE_LOGFILE"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := demo.NewLogger(logOut)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.HideCursor()

	var player *cue.Player
	if *sound {
		if player, err = cue.New(log); err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
		}
	}

	seed := demo.SeedFromEnv(log)
	scene := demo.NewScene(demo.Config{Seed: seed, Script: !*manual})
	scene.Bus.SubscribeAll(player.Handle)
	log.Info("starting", "seed", seed, "fps", *fps)

	newApp(log, screen, scene).run(max(*fps, 1))
	screen.Fini()
	fmt.Print(scene.Stats().String())
}
