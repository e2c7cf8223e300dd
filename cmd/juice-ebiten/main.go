// Command juice-ebiten runs the showcase scene on Ebitengine. Press C to
// copy the run's stats report to the clipboard.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"juice/internal/canvas"
	"juice/internal/cue"
	"juice/internal/demo"
	"juice/internal/ebitencanvas"
)

var errQuit = errors.New("quit")

type binding struct {
	key    ebiten.Key
	action demo.Action
}

type Game struct {
	log      *slog.Logger
	scene    *demo.Scene
	cv       *ebitencanvas.Canvas
	player   *cue.Player
	bindings []binding
	paused   bool
	frames   int
}

func newGame(log *slog.Logger, cv *ebitencanvas.Canvas, scene *demo.Scene, player *cue.Player) *Game {
	g := &Game{log: log, scene: scene, cv: cv, player: player}
	for _, r := range demo.Keys {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(string(r))); err != nil {
			log.Warn("no ebiten key for binding", "key", string(r))
			continue
		}
		a, _ := demo.ForKey(r)
		g.bindings = append(g.bindings, binding{key: k, action: a})
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	for _, b := range g.bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.scene.Trigger(b.action)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.scene.Stats().String()); err != nil {
			g.log.Warn("copy report failed", "err", err)
		} else {
			g.log.Info("report copied to clipboard")
		}
	}
	if !g.paused {
		g.scene.Update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.cv.Begin(screen, 1, canvas.Palette.Backdrop)
	g.scene.Render(g.cv)
	st := g.cv.End()
	g.frames++
	if g.frames%600 == 0 {
		g.log.Debug("frame",
			"live", g.scene.Live(),
			"draws", st.DrawCalls,
			"triangles", st.Triangles,
			"fps", ebiten.ActualFPS())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func main() {
	manual := flag.Bool("manual", false, "disable the scripted loop; keys only")
	mute := flag.Bool("mute", false, "disable audio cues")
	flag.Parse()

	log := demo.NewLogger(os.Stderr)

	cv, err := ebitencanvas.New()
	if err != nil {
		log.Error("canvas", "err", err)
		os.Exit(1)
	}

	var player *cue.Player
	if !*mute {
		player, err = cue.New(log)
		if err != nil {
			log.Warn("audio init failed, continuing without sound", "err", err)
		}
	}

	seed := demo.SeedFromEnv(log)
	scene := demo.NewScene(demo.Config{Seed: seed, Script: !*manual})
	scene.Bus.SubscribeAll(player.Handle)
	log.Info("starting", "seed", seed, "script", !*manual)

	ebiten.SetWindowTitle("juice")
	ebiten.SetWindowSize(demo.DefaultWidth, demo.DefaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(newGame(log, cv, scene, player)); err != nil && !errors.Is(err, errQuit) {
		log.Error("run", "err", err)
		os.Exit(1)
	}
	os.Stdout.WriteString(scene.Stats().String())
}
