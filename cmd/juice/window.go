package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type windowOptions struct {
	width, height int
	title         string
	fullscreen    bool
	vsync         bool
}

type hint struct {
	target glfw.Hint
	value  int
}

// windowHints requests a 4.1 core context. Fullscreen windows skip
// decorations and resizing.
func windowHints(o windowOptions) []hint {
	hints := []hint{
		{glfw.ContextVersionMajor, 4},
		{glfw.ContextVersionMinor, 1},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.ScaleToMonitor, glfw.True},
	}
	if o.fullscreen {
		return append(hints, hint{glfw.Decorated, glfw.False}, hint{glfw.Resizable, glfw.False})
	}
	return append(hints, hint{glfw.Decorated, glfw.True}, hint{glfw.Resizable, glfw.True})
}

func openWindow(o windowOptions) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	for _, h := range windowHints(o) {
		glfw.WindowHint(h.target, h.value)
	}

	var monitor *glfw.Monitor
	w, h := o.width, o.height
	if o.fullscreen {
		if monitor = glfw.GetPrimaryMonitor(); monitor != nil {
			if mode := monitor.GetVideoMode(); mode != nil {
				w, h = mode.Width, mode.Height
			}
		}
	}
	window, err := glfw.CreateWindow(w, h, o.title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window %dx%d: %w", w, h, err)
	}
	window.MakeContextCurrent()
	if o.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}
