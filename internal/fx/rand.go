package fx

// Next advances a 32-bit state by one mulberry32 step and returns a value
// in [0,1) together with the new state. It is a pure function: the same
// state always yields the same value on every platform.
func Next(state uint32) (float64, uint32) {
	state += 0x6D2B79F5
	z := state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / (1 << 32), state
}

// Mix derives a sub-seed from a seed and two integers (e.g. an effect id
// and a spawn serial), splitmix-style.
func Mix(seed uint32, a, b int) uint32 {
	h := uint64(seed)<<32 | uint64(uint32(a))
	h ^= uint64(uint32(b)) * 0x9E3779B185EBCA87
	h += 0x9E3779B97F4A7C15
	h = (h ^ (h >> 30)) * 0xBF58476D1CE4E5B9
	h = (h ^ (h >> 27)) * 0x94D049BB133111EB
	h ^= h >> 31
	s := uint32(h) ^ uint32(h>>32)
	if s == 0 {
		s = 1
	}
	return s
}

// Rand is a tiny deterministic stream over Next.
type Rand struct {
	s uint32
}

func NewRand(seed uint32) Rand {
	if seed == 0 {
		seed = 1
	}
	return Rand{s: seed}
}

// Seed resets the stream.
func (r *Rand) Seed(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	r.s = seed
}

// State returns the current state so a stream can be checkpointed.
func (r *Rand) State() uint32 { return r.s }

func (r *Rand) Float64() float64 {
	v, s := Next(r.s)
	r.s = s
	return v
}

func (r *Rand) RangeF(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + (hi-lo)*r.Float64()
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Range returns an int in [lo, hi] inclusive.
func (r *Rand) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// Sign returns -1 or 1.
func (r *Rand) Sign() float64 {
	if r.Float64() < 0.5 {
		return -1
	}
	return 1
}
