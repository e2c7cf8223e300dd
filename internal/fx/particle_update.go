package fx

import (
	"math"

	"juice/internal/canvas"
)

// decays holds drag factors computed once per Update so the per-particle
// loop never calls math.Exp or math.Pow.
type decays struct {
	confettiX float64 // ConfettiDrag^(dt*60)
	spark     float64 // exp(-SparkDrag*dt)
	flame     float64 // exp(-FlameDrag*dt)
}

func computeDecays(dt float64) decays {
	return decays{
		confettiX: math.Pow(ConfettiDrag, dt*60),
		spark:     math.Exp(-SparkDrag * dt),
		flame:     math.Exp(-FlameDrag * dt),
	}
}

type stepResult uint8

const (
	stepKeep stepResult = iota
	stepDetonate
)

// Update ages every particle by dt, integrates the ones past their delay,
// and swap-removes expired ones in the same pass. Detonating rockets are
// replaced by their burst in place. Events go to ev (may be nil).
func (ps *Pool) Update(dt float64, rng *Rand, ev *Events) {
	dt, ok := sanitizeDT(dt)
	if !ok {
		return
	}
	d := computeDecays(dt)

	for i := 0; i < ps.n; {
		p := &ps.items[i]

		p.Age += dt
		if p.Age >= p.Life {
			if p.Kind == KindCoin && ev != nil {
				ev.push(Event{Type: EventCoinArrived, X: p.TX, Y: p.TY, Col: p.Col})
			}
			ps.removeAt(i)
			continue
		}
		if p.Age < 0 {
			i++
			continue
		}

		if ps.step(p, dt, &d) == stepDetonate {
			rocket := *p
			ps.removeAt(i)
			ps.detonate(&rocket, rng, ev)
			continue
		}
		i++
	}
}

func (ps *Pool) step(p *Particle, dt float64, d *decays) stepResult {
	switch p.Kind {
	case KindCoin:
		t := OutCubic(p.Progress())
		p.X = bezier2(p.X0, p.CX, p.TX, t)
		p.Y = bezier2(p.Y0, p.CY, p.TY, t)
		p.Phase += p.Spin * dt

	case KindNumberPop:
		p.VY += NumberPopGravity * dt
		if p.VY > 0 {
			p.VY = 0
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt

	case KindConfetti:
		p.VY += ConfettiGravity * dt
		p.VX *= d.confettiX
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Phase += p.Spin * dt

	case KindRocket:
		p.X0, p.Y0 = p.X, p.Y
		p.X += p.VX * dt
		p.Y += p.VY * dt
		if p.Y <= p.TY {
			return stepDetonate
		}

	case KindSpark:
		p.VX *= d.spark
		p.VY *= d.spark
		p.VY += SparkGravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt

	case KindFlame:
		p.VX *= d.flame
		p.VY *= d.flame
		p.VY -= FlameBuoyancy * dt
		p.X += (p.VX + math.Sin(p.Phase+p.Age*7)*10) * dt
		p.Y += p.VY * dt

	case KindGlowRing:
		p.Phase += p.Spin * dt

	case KindRain:
		p.X += p.VX * dt
		p.Y += p.VY * dt
		ps.wrapPos(p)

	case KindSnow:
		p.X += (p.VX + math.Sin(p.Phase+p.Age*2.1)*9) * dt
		p.Y += p.VY * dt
		ps.wrapPos(p)

	case KindLeaf:
		p.X += (p.VX + math.Sin(p.Phase+p.Age*1.4)*26) * dt
		p.Y += (p.VY + math.Cos(p.Phase+p.Age*2.3)*8) * dt
		ps.wrapPos(p)

	default:
		// Burst, Sparkle, Shockwave: stationary, animated by progress alone.
	}
	return stepKeep
}

func (ps *Pool) wrapPos(p *Particle) {
	if ps.wrap.Empty() {
		return
	}
	p.X = wrap(p.X, ps.wrap.X, ps.wrap.W)
	p.Y = wrap(p.Y, ps.wrap.Y, ps.wrap.H)
}

// detonate converts a rocket into a radial spark burst plus sparkles.
func (ps *Pool) detonate(r *Particle, rng *Rand, ev *Events) {
	if rng == nil {
		fallback := NewRand(uint32(r.ID))
		rng = &fallback
	}
	sparks := int(r.TX)
	if sparks < BurstMinSparks || sparks > BurstMaxSparks {
		sparks = rng.Range(BurstMinSparks, BurstMaxSparks)
	}
	col := r.Col2
	if col.A == 0 {
		col = r.Col
	}
	hue := col.Hue()
	offset := rng.RangeF(0, 2*math.Pi)
	for i := 0; i < sparks; i++ {
		ang := offset + float64(i)/float64(sparks)*2*math.Pi + rng.RangeF(-0.12, 0.12)
		spd := rng.RangeF(BurstSpeedMin, BurstSpeedMax)
		c := col
		if rng.Chance(0.25) {
			c = canvas.HSV(math.Mod(hue+rng.RangeF(-25, 25)+360, 360), 0.55, 1)
		}
		ps.Spawn(Particle{
			Kind: KindSpark,
			X:    r.X, Y: r.Y,
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Life: rng.RangeF(0.7, 1.3),
			Size: rng.RangeF(1.6, 2.8),
			Col:  c,
		})
	}
	for i := 0; i < BurstSparkles; i++ {
		ang := rng.RangeF(0, 2*math.Pi)
		dist := rng.RangeF(10, 46)
		ps.Spawn(Particle{
			Kind: KindSparkle,
			X:    r.X + math.Cos(ang)*dist, Y: r.Y + math.Sin(ang)*dist,
			Life:  rng.RangeF(0.4, 0.8),
			Size:  rng.RangeF(4, 7),
			Phase: rng.RangeF(0, 2*math.Pi),
			Spin:  rng.RangeF(8, 14),
			Col:   canvas.Palette.White,
		}.After(rng.RangeF(0.05, 0.35)))
	}
	if ev != nil {
		ev.push(Event{Type: EventBurst, X: r.X, Y: r.Y, Col: col, Value: sparks})
	}
}
