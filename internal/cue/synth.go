package cue

import "math"

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 8 // stereo float32
)

// Kind identifies a procedural cue.
type Kind int

const (
	Coin Kind = iota
	Pop
	Thunder
	Tick
	Buzzer
	Whoosh
	Chime
	Fanfare
	kindCount
)

func (k Kind) String() string {
	switch k {
	case Coin:
		return "coin"
	case Pop:
		return "pop"
	case Thunder:
		return "thunder"
	case Tick:
		return "tick"
	case Buzzer:
		return "buzzer"
	case Whoosh:
		return "whoosh"
	case Chime:
		return "chime"
	case Fanfare:
		return "fanfare"
	}
	return "unknown"
}

// coinSteps is the pentatonic ladder a run of coin arrivals climbs.
var coinSteps = [...]float64{1, 9.0 / 8, 5.0 / 4, 3.0 / 2, 5.0 / 3}

// Synth renders a cue as interleaved stereo float32 LE samples. variant
// picks a pitch step for Coin and a noise seed for the noisy cues; the
// output depends on nothing else.
func Synth(kind Kind, variant int) []byte {
	if variant < 0 {
		variant = -variant
	}
	switch kind {
	case Coin:
		return genCoin(coinSteps[variant%len(coinSteps)])
	case Pop:
		return genPop(uint64(variant) + 0x9E37)
	case Thunder:
		return genThunder(uint64(variant) + 0x51ED)
	case Tick:
		return genTick()
	case Buzzer:
		return genBuzzer()
	case Whoosh:
		return genWhoosh(uint64(variant) + 0x2545)
	case Chime:
		return genChime()
	case Fanfare:
		return genFanfare()
	}
	return nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat is a gentle tanh-like saturation that never hard clips.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns a two-operator FM sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

func frames(seconds float64) int { return int(seconds * SampleRate) }

// mixDown saturates a mono mix into a stereo buffer.
func mixDown(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCoin: two-note bell blip, the second a fourth above.
func genCoin(step float64) []byte {
	n := frames(0.16)
	split := n / 3
	base := 988 * step // B5
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := base
		if i >= split {
			freq = base * 4 / 3
		}
		env := adsr(p, 0.01, 0.45, 0.2, 0.4)
		s := fm(t, freq, 3.5, 2.2*env) * env * 0.34
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.05
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genPop: firework report, a noise crack over a falling sub thump.
func genPop(seed uint64) []byte {
	n := frames(0.42)
	buf := makeBuf(n)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.7
		}
		freq := 140 * math.Pow(0.25, p*2)
		phase += 2 * math.Pi * freq / SampleRate
		sub := math.Sin(phase) * math.Exp(-p*9) * 0.45
		lp = lp*0.82 + lcg(&seed)*0.18
		crackle := lp * math.Exp(-p*4) * 0.3
		putStereoF32(buf, i, softSat((crack+sub+crackle)*0.8))
	}
	return buf
}

// genThunder: long lowpassed rumble with a bright leading crack.
func genThunder(seed uint64) []byte {
	n := frames(1.6)
	buf := makeBuf(n)
	lp1, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		lp1 = lp1*0.97 + raw*0.03
		lp2 = lp2*0.995 + raw*0.005
		crack := 0.0
		if p < 0.05 {
			crack = raw * (1 - p/0.05) * 0.4
		}
		roll := 0.6 + 0.4*math.Sin(2*math.Pi*2.3*p)
		s := (lp1*2.2+lp2*6)*math.Exp(-p*2.5)*roll + crack
		putStereoF32(buf, i, softSat(s*0.7))
	}
	return buf
}

// genTick: short wooden click for the flip clock.
func genTick() []byte {
	n := SampleRate * 40 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 12)
		s := fm(t, 1800, 0.5, 1.4) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBuzzer: detuned square-ish pair, the time-up signal.
func genBuzzer() []byte {
	n := frames(0.6)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.1, 0.8, 0.2)
		a := math.Tanh(3 * math.Sin(2*math.Pi*196*t))
		b := math.Tanh(3 * math.Sin(2*math.Pi*198.5*t))
		putStereoF32(buf, i, softSat((a+b)*env*0.22))
	}
	return buf
}

// genWhoosh: bandpassed noise sweeping upward.
func genWhoosh(seed uint64) []byte {
	n := frames(0.35)
	buf := makeBuf(n)
	lo, hi := 0.0, 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		k := 0.05 + 0.4*p
		raw := lcg(&seed)
		hi = hi*(1-k) + raw*k
		lo = lo*0.98 + raw*0.02
		env := math.Sin(math.Pi * p)
		putStereoF32(buf, i, softSat((hi-lo)*env*0.6))
	}
	return buf
}

// genChime: a single FM bell for the text reveal.
func genChime() []byte {
	n := frames(0.9)
	mix := make([]float64, n)
	for _, f := range [...]float64{1318.5, 1975.5} {
		for i := 0; i < n; i++ {
			t := float64(i) / SampleRate
			p := float64(i) / float64(n)
			env := math.Exp(-p * 5)
			mix[i] += fm(t, f, 2.756, 3*env) * env * 0.2
		}
	}
	return mixDown(mix)
}

// genFanfare: ascending FM bell arpeggio; each note rings over the next.
func genFanfare() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := SampleRate * 90 / 1000
	total := len(notes)*noteLen + frames(0.3)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.34
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	return mixDown(mix)
}
