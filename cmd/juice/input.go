package main

import (
	"unicode"

	"github.com/go-gl/glfw/v3.3/glfw"

	"juice/internal/demo"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

type binding struct {
	key    glfw.Key
	action demo.Action
}

// actionBindings maps demo.Keys onto GLFW keys. GLFW codes for digits and
// letters are their uppercase ASCII values.
func actionBindings() []binding {
	out := make([]binding, 0, len(demo.Keys))
	for _, r := range demo.Keys {
		a, _ := demo.ForKey(r)
		out = append(out, binding{key: glfw.Key(unicode.ToUpper(r)), action: a})
	}
	return out
}
