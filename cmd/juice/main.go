// Command juice is the desktop showcase: a glfw window rendering the demo
// scene through the OpenGL canvas, with procedural audio cues.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"juice/internal/canvas"
	"juice/internal/cue"
	"juice/internal/demo"
	"juice/internal/glcanvas"
)

func main() {
	width := flag.Int("width", demo.DefaultWidth, "window width")
	height := flag.Int("height", demo.DefaultHeight, "window height")
	manual := flag.Bool("manual", false, "disable the scripted loop; keys only")
	mute := flag.Bool("mute", false, "start with audio off")
	fullscreen := flag.Bool("fullscreen", false, "open fullscreen on the primary monitor")
	vsync := flag.Bool("vsync", true, "sync buffer swaps to the display")
	flag.Parse()

	log := demo.NewLogger(os.Stderr)
	opts := windowOptions{
		width:      *width,
		height:     *height,
		title:      "juice",
		fullscreen: *fullscreen,
		vsync:      *vsync,
	}
	if err := run(log, opts, !*manual, *mute); err != nil {
		log.Error("juice failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, opts windowOptions, script, mute bool) error {
	runtime.LockOSThread()

	window, err := openWindow(opts)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("opengl", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	cv, err := glcanvas.New()
	if err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	defer cv.Destroy()

	player, err := cue.New(log)
	if err != nil {
		log.Warn("audio init failed, continuing without sound", "err", err)
	}
	if mute {
		player.SetVolume(0)
	}

	seed := demo.SeedFromEnv(log)
	winW, winH := window.GetSize()
	log.Info("starting", "seed", seed, "width", winW, "height", winH, "script", script)

	scene := demo.NewScene(demo.Config{
		Seed:   seed,
		Width:  float64(winW),
		Height: float64(winH),
		Script: script,
	})
	scene.Bus.SubscribeAll(player.Handle)

	input := NewInput()
	bindings := actionBindings()
	paused := false
	volume := cue.DefaultVolume
	if mute {
		volume = 0
	}

	frames := 0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		winW, winH := window.GetSize()
		if fbW <= 0 || fbH <= 0 || winW <= 0 || winH <= 0 {
			continue
		}
		scene.Resize(float64(winW), float64(winH))

		for _, b := range bindings {
			if input.JustPressed(window, b.key) {
				log.Debug("trigger", "action", b.action)
				scene.Trigger(b.action)
			}
		}
		if input.JustPressed(window, glfw.KeySpace) {
			paused = !paused
		}
		if input.JustPressed(window, glfw.KeyM) {
			if volume > 0 {
				volume = 0
			} else {
				volume = cue.DefaultVolume
			}
			player.SetVolume(volume)
		}

		if !paused {
			scene.Update(dt)
		}

		cv.Begin(fbW, fbH, float64(fbW)/float64(winW), canvas.Palette.Backdrop)
		scene.Render(cv)
		st := cv.End()
		window.SwapBuffers()

		frames++
		if frames%600 == 0 {
			log.Debug("frame",
				"live", scene.Live(),
				"money", scene.Money(),
				"draws", st.DrawCalls,
				"triangles", st.Triangles,
				"sprites", st.Sprites)
		}
	}

	log.Info("done", "frames", frames, "peak_particles", scene.Stats().PeakParticles)
	return nil
}
