package fx

// Phase is a named window on a timeline, in seconds from the start.
type Phase struct {
	Name       string
	Start, End float64
}

const maxPhases = 8

// Timeline is an elapsed-time clock over a fixed phase table. It reports
// phase entries so owners can fire one-shot spawns at boundaries.
type Timeline struct {
	phases  [maxPhases]Phase
	n       int
	total   float64
	elapsed float64
	started bool
}

// NewTimeline builds a table; phases past maxPhases are ignored.
func NewTimeline(total float64, phases ...Phase) Timeline {
	t := Timeline{total: total}
	for _, p := range phases {
		if t.n == maxPhases {
			break
		}
		t.phases[t.n] = p
		t.n++
	}
	return t
}

func (t *Timeline) Restart() {
	t.elapsed = 0
	t.started = false
}

func (t *Timeline) Elapsed() float64  { return t.elapsed }
func (t *Timeline) Total() float64    { return t.total }
func (t *Timeline) Done() bool        { return t.elapsed >= t.total }
func (t *Timeline) Len() int          { return t.n }
func (t *Timeline) Phase(i int) Phase { return t.phases[i] }

// Advance moves the clock by dt and returns a bitmask of the phases whose
// start was crossed. The first call after Restart also reports phases
// starting at zero.
func (t *Timeline) Advance(dt float64) uint32 {
	prev := t.elapsed
	first := !t.started
	t.started = true
	t.elapsed += dt
	var entered uint32
	for i := 0; i < t.n; i++ {
		s := t.phases[i].Start
		if (s > prev || (first && s == prev)) && s <= t.elapsed {
			entered |= 1 << i
		}
	}
	return entered
}

// Progress is the elapsed position inside phase i, clamped to [0,1].
func (t *Timeline) Progress(i int) float64 {
	p := t.phases[i]
	return Window(t.elapsed, p.Start, p.End)
}

// Within reports whether elapsed lies in [start, end].
func (t *Timeline) Within(start, end float64) bool {
	return t.elapsed >= start && t.elapsed <= end
}
