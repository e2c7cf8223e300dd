package demo

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"juice/internal/fx"
)

const eventKinds = int(fx.EventCelebrationDone) + 1

// Stats accumulates per-run counters for the report and the HUD overlay.
type Stats struct {
	Frames        int
	Time          float64
	PeakParticles int
	Events        [eventKinds]int
	Actions       [actionCount]int
}

func (st *Stats) observe(dt float64, live int, events []fx.Event) {
	st.Frames++
	st.Time += dt
	if live > st.PeakParticles {
		st.PeakParticles = live
	}
	for _, e := range events {
		if int(e.Type) < eventKinds {
			st.Events[e.Type]++
		}
	}
}

// TotalEvents sums every event counter.
func (st Stats) TotalEvents() int {
	n := 0
	for _, c := range st.Events {
		n += c
	}
	return n
}

// Report writes a two-column table of the counters to w.
func (st Stats) Report(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "frames\t%d\n", st.Frames)
	fmt.Fprintf(tw, "time\t%.2fs\n", st.Time)
	fmt.Fprintf(tw, "peak particles\t%d\n", st.PeakParticles)
	for i, c := range st.Events {
		fmt.Fprintf(tw, "event %s\t%d\n", fx.EventType(i), c)
	}
	for i, c := range st.Actions {
		fmt.Fprintf(tw, "action %s\t%d\n", Action(i), c)
	}
	return tw.Flush()
}

func (st Stats) String() string {
	var b strings.Builder
	_ = st.Report(&b)
	return b.String()
}
