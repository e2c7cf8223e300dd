package demo

import "juice/internal/fx"

type Handler func(fx.Event)

// Bus fans a tick's fx events out to subscribers by type. Handlers run on
// the caller's goroutine during Scene.Update.
type Bus struct {
	handlers map[fx.EventType][]Handler
	all      []func([]fx.Event)
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[fx.EventType][]Handler),
	}
}

func (b *Bus) Subscribe(t fx.EventType, fn Handler) {
	b.handlers[t] = append(b.handlers[t], fn)
}

// SubscribeAll registers fn for every non-empty batch of events.
func (b *Bus) SubscribeAll(fn func([]fx.Event)) {
	b.all = append(b.all, fn)
}

func (b *Bus) Emit(events []fx.Event) {
	if len(events) == 0 {
		return
	}
	for _, fn := range b.all {
		fn(events)
	}
	for _, e := range events {
		for _, fn := range b.handlers[e.Type] {
			fn(e)
		}
	}
}
