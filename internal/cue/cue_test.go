package cue

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"juice/internal/fx"
)

func TestSynthSamplesInRange(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		buf := Synth(k, 3)
		if len(buf) == 0 || len(buf)%frameBytes != 0 {
			t.Fatalf("%v: %d bytes", k, len(buf))
		}
		for i := 0; i < len(buf); i += 4 {
			v := float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i:])))
			if math.IsNaN(v) || v < -1 || v > 1 {
				t.Fatalf("%v: sample %d = %v", k, i/4, v)
			}
		}
	}
}

func TestSynthIsDeterministic(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if !bytes.Equal(Synth(k, 7), Synth(k, 7)) {
			t.Errorf("%v: two renders differ", k)
		}
	}
	if bytes.Equal(Synth(Pop, 1), Synth(Pop, 2)) {
		t.Error("pop variants share noise")
	}
	if bytes.Equal(Synth(Coin, 0), Synth(Coin, 1)) {
		t.Error("coin steps share a pitch")
	}
	if Synth(kindCount, 0) != nil {
		t.Error("unknown kind rendered samples")
	}
}

func TestSynthChannelsMatch(t *testing.T) {
	buf := Synth(Tick, 0)
	for i := 0; i < len(buf); i += frameBytes {
		if !bytes.Equal(buf[i:i+4], buf[i+4:i+8]) {
			t.Fatalf("frame %d: left and right differ", i/frameBytes)
		}
	}
}

func TestSelectOnePerKind(t *testing.T) {
	events := []fx.Event{
		{Type: fx.EventCoinArrived},
		{Type: fx.EventCoinArrived},
		{Type: fx.EventBurst},
		{Type: fx.EventCeremonyPhase, Value: fx.PhaseBackdrop},
		{Type: fx.EventCeremonyPhase, Value: fx.PhaseTextReveal},
	}
	s := Select(events)
	want := map[Kind]bool{Coin: true, Pop: true, Chime: true}
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) != want[k] {
			t.Errorf("Has(%v) = %v, want %v", k, s.Has(k), want[k])
		}
	}
}

func TestForMapsEveryEvent(t *testing.T) {
	cases := []struct {
		ev   fx.Event
		want Kind
	}{
		{fx.Event{Type: fx.EventThunder}, Thunder},
		{fx.Event{Type: fx.EventTick, Value: 9}, Tick},
		{fx.Event{Type: fx.EventExpired}, Buzzer},
		{fx.Event{Type: fx.EventCeremonyPhase, Value: fx.PhaseScaleIn}, Whoosh},
		{fx.Event{Type: fx.EventCelebrationDone, Value: 500}, Fanfare},
	}
	for _, c := range cases {
		got, ok := For(c.ev)
		if !ok || got != c.want {
			t.Errorf("For(%v) = %v, %v; want %v", c.ev.Type, got, ok, c.want)
		}
	}
	if _, ok := For(fx.Event{Type: fx.EventCeremonyPhase, Value: fx.PhaseFadeOut}); ok {
		t.Error("fade-out phase has a cue")
	}
}

func TestNilPlayerIsSilent(t *testing.T) {
	var p *Player
	p.SetVolume(0.3)
	p.Play(Coin)
	p.Handle([]fx.Event{{Type: fx.EventBurst}})
}

func TestPlayerWaitsForDevice(t *testing.T) {
	p := &Player{ready: make(chan struct{}), volume: DefaultVolume}
	p.Play(Coin)
	if p.voices.Load() != 0 || p.coinRun != 0 {
		t.Error("played before the device was ready")
	}
	p.SetVolume(4)
	if p.volume != 1 {
		t.Errorf("volume = %v, want 1", p.volume)
	}
}

func TestSampleReaderDrains(t *testing.T) {
	data := Synth(Tick, 0)
	got, err := io.ReadAll(&sampleReader{data: data})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("read %d bytes, want %d", len(got), len(data))
	}
}
