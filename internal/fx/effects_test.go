package fx

import (
	"math"
	"testing"

	"juice/internal/canvas"
)

func TestCoinFlyStaggeredDelays(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 5})
	if n := e.SpawnCoinFly(20, 400, 580, 30, 10, 0.04); n != 10 {
		t.Fatalf("spawned %d coins, want 10", n)
	}
	for i := 0; i < 9; i++ {
		e.Update(0.04)
	}
	e.Update(0.001)

	if e.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", e.Len())
	}
	var last *Particle
	for i := range e.Pool().Live() {
		p := e.Pool().At(i)
		if p.InDelay() {
			t.Errorf("coin %d still delayed, Age %v", p.ID, p.Age)
		}
		if p.ID == 10 {
			last = p
		}
	}
	if last == nil {
		t.Fatal("tenth coin missing")
	}
	for _, p := range e.Pool().Live() {
		if p.ID != last.ID && p.Progress() <= last.Progress() {
			t.Errorf("coin %d progress %v <= last coin progress %v", p.ID, p.Progress(), last.Progress())
		}
	}

	rec := canvas.NewRecorder(canvas.XYWH(0, 0, 600, 450), false)
	e.Render(rec, canvas.XYWH(0, 0, 600, 450))
	if got := rec.Count(canvas.OpCircle); got != 30 {
		t.Errorf("coin circles = %d, want 30 (three per coin)", got)
	}
}

func TestCoinArrivalEvents(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 9})
	e.SpawnCoinFly(0, 0, 300, 40, 3, 0)
	arrived := 0
	for i := 0; i < 60; i++ {
		e.Update(1.0 / 60)
		for _, ev := range e.Events() {
			if ev.Type != EventCoinArrived {
				continue
			}
			arrived++
			if ev.X != 300 || ev.Y != 40 {
				t.Errorf("arrival at (%v,%v), want (300,40)", ev.X, ev.Y)
			}
		}
	}
	if arrived != 3 {
		t.Errorf("arrivals = %d, want 3", arrived)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d after flight, want 0", e.Len())
	}
}

func TestConfettiApex(t *testing.T) {
	ps := NewPool(4, DropNew)
	ps.Spawn(Particle{Kind: KindConfetti, VY: -100, Life: 5, Size: 8, TX: 0.5})
	for i := 1; i <= 20; i++ {
		ps.Update(1.0/60, nil, nil)
		tt := float64(i) / 60
		if vy, want := ps.At(0).VY, -100+ConfettiGravity*tt; !near(vy, want, 1e-9) {
			t.Fatalf("vy(%v) = %v, want %v", tt, vy, want)
		}
	}
	if vy := ps.At(0).VY; !near(vy, 0, 1e-9) {
		t.Errorf("vy at apex = %v, want ~0", vy)
	}
}

func TestConfettiDragIsFrameRateIndependent(t *testing.T) {
	a := NewPool(1, DropNew)
	b := NewPool(1, DropNew)
	a.Spawn(Particle{Kind: KindConfetti, VX: 100, Life: 5})
	b.Spawn(Particle{Kind: KindConfetti, VX: 100, Life: 5})
	for i := 0; i < 60; i++ {
		a.Update(1.0/60, nil, nil)
	}
	for i := 0; i < 30; i++ {
		b.Update(1.0/30, nil, nil)
	}
	if va, vb := a.At(0).VX, b.At(0).VX; !near(va, vb, 1e-9) {
		t.Errorf("vx after 1s: %v at 60 Hz vs %v at 30 Hz", va, vb)
	}
	if want := 100 * math.Pow(ConfettiDrag, 60); !near(a.At(0).VX, want, 1e-9) {
		t.Errorf("vx = %v, want %v", a.At(0).VX, want)
	}
}

func TestShockwaveFadesAndExpires(t *testing.T) {
	if a := KindAlpha(KindShockwave, 1); a != 0 {
		t.Errorf("alpha at progress 1 = %v, want 0", a)
	}
	e := NewEngine(EngineConfig{Seed: 2})
	e.SpawnShockwave(50, 50, 100, 0.5, canvas.Palette.White)
	elapsed := 0.0
	for elapsed+0.1 < 0.5 {
		e.Update(0.1)
		elapsed += 0.1
		if e.Len() != 1 {
			t.Fatalf("shockwave gone at %v", elapsed)
		}
		if a := e.Pool().At(0).Alpha(); a <= 0 {
			t.Fatalf("alpha %v before the end", a)
		}
	}
	for elapsed < 0.5 {
		e.Update(0.1)
		elapsed += 0.1
	}
	if e.Len() != 0 {
		t.Errorf("shockwave still live at progress 1")
	}
}

func TestRocketDetonates(t *testing.T) {
	fw := NewFireworks(4)
	if !fw.Launch(100, 400, 200, canvas.RGB(255, 80, 80)) {
		t.Fatal("launch rejected")
	}
	bursts := 0
	var sparks int
	for i := 0; i < 60; i++ {
		fw.Update(1.0 / 60)
		for _, ev := range fw.Events() {
			if ev.Type == EventBurst {
				bursts++
				sparks = ev.Value
				if ev.Y > 200 {
					t.Errorf("burst at y=%v, below burst altitude 200", ev.Y)
				}
			}
		}
	}
	if bursts != 1 {
		t.Fatalf("bursts = %d, want 1", bursts)
	}
	if sparks < BurstMinSparks || sparks > BurstMaxSparks {
		t.Errorf("burst sparks = %d, want [%d,%d]", sparks, BurstMinSparks, BurstMaxSparks)
	}
	kinds := map[Kind]int{}
	for _, p := range fw.Pool().Live() {
		kinds[p.Kind]++
	}
	if kinds[KindRocket] != 0 {
		t.Errorf("%d rockets left after detonation", kinds[KindRocket])
	}
	if kinds[KindSpark] == 0 {
		t.Error("no sparks after detonation")
	}
}

func TestFireworksDropNewWhenFull(t *testing.T) {
	fw := NewFireworks(1)
	bounds := canvas.XYWH(0, 0, 640, 480)
	launched := fw.Volley(bounds, FireworksCapacity+10)
	if launched != FireworksCapacity {
		t.Errorf("launched %d, want %d", launched, FireworksCapacity)
	}
	if fw.Pool().Dropped() != 10 {
		t.Errorf("Dropped() = %d, want 10", fw.Pool().Dropped())
	}
}

func TestNumberPopLabel(t *testing.T) {
	e := NewEngine(EngineConfig{})
	e.SpawnNumberPop(10, 10, 250, canvas.Palette.Cash)
	e.SpawnNumberPop(10, 10, -40, canvas.Palette.Loss)
	if got := e.Pool().At(0).Text; got != "+250" {
		t.Errorf("label = %q, want +250", got)
	}
	if got := e.Pool().At(1).Text; got != "-40" {
		t.Errorf("label = %q, want -40", got)
	}
	y0 := e.Pool().At(0).Y
	e.Update(0.1)
	if e.Pool().At(0).Y >= y0 {
		t.Error("number pop did not rise")
	}
	rec := canvas.NewRecorder(canvas.XYWH(0, 0, 100, 100), true)
	e.Render(rec, canvas.XYWH(0, 0, 100, 100))
	if rec.Count(canvas.OpText) != 4 {
		t.Errorf("text ops = %d, want 4 (shadow and face per label)", rec.Count(canvas.OpText))
	}
}

func TestEngineEvictsOldestWhenFull(t *testing.T) {
	e := NewEngine(EngineConfig{Capacity: 8, Seed: 1})
	n := e.SpawnConfetti(0, 0, 20, -math.Pi/2, 0.5, 100)
	if n != 20 {
		t.Errorf("SpawnConfetti = %d, want 20 with eviction", n)
	}
	if e.Len() != 8 || e.Pool().Evicted() != 12 {
		t.Errorf("Len %d Evicted %d, want 8, 12", e.Len(), e.Pool().Evicted())
	}
	for _, p := range e.Pool().Live() {
		if p.ID <= 12 {
			t.Errorf("particle %d survived eviction", p.ID)
		}
	}
}

func TestZeroEngineConfigEvicts(t *testing.T) {
	e := NewEngine(EngineConfig{})
	n := e.SpawnSparkles(50, 50, 20, JuiceCapacity+5, canvas.Palette.GoldShine)
	if n != JuiceCapacity+5 {
		t.Errorf("SpawnSparkles = %d, want %d", n, JuiceCapacity+5)
	}
	if e.Len() != JuiceCapacity || e.Pool().Evicted() != 5 || e.Pool().Dropped() != 0 {
		t.Errorf("Len %d Evicted %d Dropped %d", e.Len(), e.Pool().Evicted(), e.Pool().Dropped())
	}
}

func TestEngineClear(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1})
	e.SpawnFlame(10, 10, 20)
	e.SpawnGlowRing(10, 10, 30, canvas.Palette.Glow, 1)
	e.Shake(5, 1)
	e.Flash(canvas.Palette.White, 0.5, 1)
	e.SetVignette(0.5)
	e.Update(0.05)
	e.Clear()
	if e.Active() {
		t.Error("engine active after Clear")
	}
	e.Clear()
	if e.Len() != 0 {
		t.Errorf("Len() = %d", e.Len())
	}
}

func TestWeatherWrapsInsideBounds(t *testing.T) {
	for _, mode := range []WeatherMode{WeatherRain, WeatherSnow, WeatherLeaves, WeatherStorm} {
		w := NewWeather(WeatherConfig{}, 21)
		w.SetBounds(200, 120)
		w.Configure(mode, 21)
		for i := 0; i < 120; i++ {
			w.Update(1.0 / 60)
		}
		if w.Len() == 0 {
			t.Errorf("%v: no particles after 2s", mode)
		}
		for _, p := range w.Pool().Live() {
			if p.X < 0 || p.X >= 200 || p.Y < 0 || p.Y >= 120 {
				t.Errorf("%v: particle at (%v,%v) outside bounds", mode, p.X, p.Y)
				break
			}
		}
	}
}

func TestWeatherClearSpawnsNothing(t *testing.T) {
	w := NewWeather(WeatherConfig{}, 3)
	w.SetBounds(200, 200)
	for i := 0; i < 60; i++ {
		w.Update(1.0 / 60)
	}
	if w.Len() != 0 || w.Active() {
		t.Errorf("clear weather: Len %d Active %v", w.Len(), w.Active())
	}
}

func TestWeatherWindStaysBounded(t *testing.T) {
	w := NewWeather(WeatherConfig{}, 77)
	w.SetBounds(300, 300)
	w.Configure(WeatherSnow, 77)
	prev := w.Wind()
	moved := false
	for i := 0; i < 6000; i++ {
		w.Update(0.05)
		if math.Abs(w.Wind()) > MaxWind {
			t.Fatalf("wind %v exceeds %v", w.Wind(), MaxWind)
		}
		if d := math.Abs(w.Wind() - prev); d > WindSlew*0.05+1e-9 {
			t.Fatalf("wind jumped by %v in one step", d)
		} else if d > 0 {
			moved = true
		}
		prev = w.Wind()
	}
	if !moved {
		t.Error("wind never changed")
	}
}

func TestStormThunder(t *testing.T) {
	w := NewWeather(WeatherConfig{LightningChance: 4}, 8)
	w.SetBounds(400, 300)
	w.Configure(WeatherStorm, 8)
	thunder := 0
	for i := 0; i < 600; i++ {
		w.Update(1.0 / 60)
		for _, ev := range w.Events() {
			if ev.Type == EventThunder {
				thunder++
			}
		}
	}
	if thunder == 0 {
		t.Error("no thunder in 10s of storm")
	}
}

func TestParseWeather(t *testing.T) {
	for m := WeatherClear; m <= WeatherStorm; m++ {
		got, ok := ParseWeather(m.String())
		if !ok || got != m {
			t.Errorf("ParseWeather(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseWeather("hail"); ok {
		t.Error("ParseWeather accepted hail")
	}
}

func TestFlameColorRamp(t *testing.T) {
	p := &Particle{Kind: KindFlame, Life: 1, Col: canvas.Palette.FireHot, Col2: canvas.Palette.FireCool}
	cases := []struct {
		t    float64
		want canvas.Color
	}{
		{0, canvas.Palette.FireHot},
		{0.5, canvas.Palette.FireMid},
		{1, canvas.Palette.FireCool},
	}
	for _, c := range cases {
		if got := flameColor(p, c.t); got != c.want {
			t.Errorf("flameColor(%v) = %+v, want %+v", c.t, got, c.want)
		}
	}

	ps := NewPool(1, DropNew)
	ps.Spawn(*p)
	ps.At(0).Age = 0.5
	rec := canvas.NewRecorder(canvas.XYWH(0, 0, 100, 100), true)
	ps.Render(rec, canvas.NewBrush())
	face := rec.Ops[len(rec.Ops)-1].Color
	if mid := canvas.Palette.FireMid; face.R != mid.R || face.G != mid.G || face.B != mid.B {
		t.Errorf("mid-life flame drawn as %+v, want FireMid", face)
	}
}

func TestCoinRimDefaultsToDarkenedFace(t *testing.T) {
	ps := NewPool(1, DropNew)
	ps.Spawn(Particle{Kind: KindCoin, Life: 1, Size: 10, Col: canvas.Palette.Cash})
	rec := canvas.NewRecorder(canvas.XYWH(0, 0, 100, 100), true)
	ps.Render(rec, canvas.NewBrush())
	if len(rec.Ops) == 0 {
		t.Fatal("coin drew nothing")
	}
	if got, want := rec.Ops[0].Color, canvas.Palette.Cash.Mul(170); got != want {
		t.Errorf("rim = %+v, want %+v", got, want)
	}
}
