package fx

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestEasingEndpoints(t *testing.T) {
	fns := map[string]func(float64) float64{
		"linear":     Linear,
		"outCubic":   OutCubic,
		"inOutQuint": InOutQuint,
		"outBack":    func(t float64) float64 { return OutBack(t, DefaultOvershoot) },
		"smoothstep": Smoothstep,
	}
	for name, f := range fns {
		if v := f(0); !near(v, 0, 1e-12) {
			t.Errorf("%s(0) = %v, want 0", name, v)
		}
		if v := f(1); !near(v, 1, 1e-12) {
			t.Errorf("%s(1) = %v, want 1", name, v)
		}
	}
}

func TestOutBackOvershoots(t *testing.T) {
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = math.Max(peak, OutBack(float64(i)/100, DefaultOvershoot))
	}
	if peak <= 1.05 {
		t.Errorf("OutBack peak = %v, want > 1.05", peak)
	}
	if v := OutBack(0.5, 0); v > 1 {
		t.Errorf("OutBack with zero overshoot = %v, want <= 1", v)
	}
}

func TestPingPong(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {0.25, 0.5}, {0.5, 1}, {0.75, 0.5}, {1, 0},
	}
	for _, c := range cases {
		if got := PingPong(c.in); !near(got, c.want, 1e-12) {
			t.Errorf("PingPong(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLerpClamps(t *testing.T) {
	if v := Lerp(10, 20, 1.5); v != 20 {
		t.Errorf("Lerp(10,20,1.5) = %v, want 20", v)
	}
	if v := Lerp(10, 20, -1); v != 10 {
		t.Errorf("Lerp(10,20,-1) = %v, want 10", v)
	}
	if v := Lerp(10, 20, math.NaN()); v != 10 {
		t.Errorf("Lerp with NaN = %v, want 10", v)
	}
}

func TestWindow(t *testing.T) {
	if v := Window(0.25, 0.1, 0.4); !near(v, 0.5, 1e-12) {
		t.Errorf("Window = %v, want 0.5", v)
	}
	if v := Window(2, 1, 1); v != 1 {
		t.Errorf("degenerate Window past end = %v, want 1", v)
	}
	if v := Window(0.5, 1, 1); v != 0 {
		t.Errorf("degenerate Window before end = %v, want 0", v)
	}
}

func TestInOutQuintSymmetric(t *testing.T) {
	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		if a, b := InOutQuint(x), 1-InOutQuint(1-x); !near(a, b, 1e-12) {
			t.Errorf("InOutQuint not symmetric at %v: %v vs %v", x, a, b)
		}
	}
}
