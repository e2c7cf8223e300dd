// Package cue plays short procedural sounds for fx events through oto.
// Hosts poll the engines' events after each tick and hand them to a
// Player; playback runs on its own goroutines and only sees copied sample
// buffers.
package cue

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"juice/internal/fx"
)

// MaxVoices caps simultaneous cues so a confetti storm cannot clip.
const MaxVoices = 6

// DefaultVolume matches the desktop host's effects level.
const DefaultVolume = 0.58

// Set is a bitmask of cue kinds.
type Set uint16

func (s Set) Has(k Kind) bool { return s&(1<<k) != 0 }

func (s *Set) add(k Kind) { *s |= 1 << k }

// For maps an fx event to the cue it triggers.
func For(ev fx.Event) (Kind, bool) {
	switch ev.Type {
	case fx.EventCoinArrived:
		return Coin, true
	case fx.EventBurst:
		return Pop, true
	case fx.EventThunder:
		return Thunder, true
	case fx.EventTick:
		return Tick, true
	case fx.EventExpired:
		return Buzzer, true
	case fx.EventCeremonyPhase:
		switch ev.Value {
		case fx.PhaseScaleIn:
			return Whoosh, true
		case fx.PhaseTextReveal:
			return Chime, true
		}
	case fx.EventCelebrationDone:
		return Fanfare, true
	}
	return 0, false
}

// Select folds a tick's events into the cues to play, one per kind.
func Select(events []fx.Event) Set {
	var s Set
	for _, ev := range events {
		if k, ok := For(ev); ok {
			s.add(k)
		}
	}
	return s
}

// Player owns the oto context and a bank of pre-rendered cues. A nil
// *Player is valid and silent, so hosts keep running without a device.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	log    *slog.Logger
	bank   [kindCount][]byte
	coins  [len(coinSteps)][]byte
	volume float64
	voices atomic.Int32
	// coinRun walks the coin ladder so a shower climbs in pitch.
	coinRun int
}

// New opens the audio device and renders the cue bank.
func New(log *slog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Player{ctx: ctx, ready: ready, log: log, volume: DefaultVolume}
	for k := Kind(0); k < kindCount; k++ {
		p.bank[k] = Synth(k, 0)
	}
	for i := range p.coins {
		p.coins[i] = Synth(Coin, i)
	}
	log.Debug("audio ready", "rate", SampleRate, "cues", int(kindCount))
	return p, nil
}

// SetVolume sets the effects volume, clamped to [0,1].
func (p *Player) SetVolume(v float64) {
	if p == nil {
		return
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.volume = v
}

// Handle plays the cues for one tick of events.
func (p *Player) Handle(events []fx.Event) {
	if p == nil || len(events) == 0 {
		return
	}
	s := Select(events)
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			p.Play(k)
		}
	}
}

// Play starts a cue unless the device is still warming up or every voice
// is busy.
func (p *Player) Play(k Kind) {
	if p == nil || k < 0 || k >= kindCount {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if p.voices.Add(1) > MaxVoices {
		p.voices.Add(-1)
		p.log.Debug("cue dropped", "cue", k)
		return
	}
	samples := p.bank[k]
	if k == Coin {
		samples = p.coins[p.coinRun%len(p.coins)]
		p.coinRun++
	}
	vol := p.volume
	go func() {
		defer p.voices.Add(-1)
		player := p.ctx.NewPlayer(&sampleReader{data: samples})
		player.SetVolume(vol)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			p.log.Warn("close cue player", "cue", k, "err", err)
		}
	}()
}

// sampleReader streams a shared, read-only buffer.
type sampleReader struct {
	data []byte
	pos  int
}

func (r *sampleReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
