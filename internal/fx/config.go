package fx

// Pool capacities per engine instance.
const (
	JuiceCapacity       = 400
	FireworksCapacity   = 320
	WeatherCapacity     = 260
	CeremonyCapacity    = 200
	CelebrationCapacity = 160
)

// Simulation limits.
const (
	MaxStep = 0.1   // largest dt accepted by Update, seconds
	MinLife = 0.016 // lifetimes are clamped up to one 60 Hz frame
)

// Physics.
const (
	NumberPopGravity = 80.0  // u/s², pulls the rising label back
	ConfettiGravity  = 300.0 // u/s²
	ConfettiDrag     = 0.98  // vx multiplier per 60 Hz tick
	SparkGravity     = 90.0
	SparkDrag        = 2.2 // exp(-SparkDrag*dt) per frame
	FlameBuoyancy    = 60.0
	FlameDrag        = 1.8
	RocketTrail      = 0.045 // seconds of trail drawn behind a rocket
)

// Firework burst sizing.
const (
	BurstMinSparks   = 20
	BurstMaxSparks   = 32
	BurstSparkles    = 6
	BurstSpeedMin    = 70.0
	BurstSpeedMax    = 170.0
	RocketSpeed      = 260.0
	RocketLaunchRate = 2.2 // launches per second while a ceremony window is open
)

// Screen modulators.
const (
	ShakeFreqX   = 29.0 // Hz; x and y differ so motion is not circular
	ShakeFreqY   = 23.0
	VignetteRate = 4.0 // 1/s exponential approach
	MaxVignette  = 0.85
)

// Weather rates in particles per second at intensity 1.
const (
	RainRate   = 150.0
	SnowRate   = 70.0
	LeavesRate = 18.0
	GustPeriod = 0.6
	MaxWind    = 40.0
	WindSlew   = 6.0 // max wind change per second while easing to a gust
)

// Ceremony phase table, seconds from Start.
const (
	CeremonyBackdropIn  = 0.4
	CeremonyScaleStart  = 0.1
	CeremonyScaleEnd    = 0.7
	CeremonyTextReveal  = 0.5
	CeremonyFadeOut     = 3.2
	CeremonyDuration    = 4.0
	CeremonyRocketStart = 0.3
	CeremonyRocketEnd   = 2.8
)

// Celebration timing.
const (
	CelebrationDuration = 2.4
	CelebrationBannerIn = 0.35
	CelebrationCoins    = 12
	CelebrationStagger  = 0.04
)

// Flip clock.
const (
	FlipDuration = 0.3
	FlipDigits   = 4
)

// EventCapacity bounds the per-tick event queue.
const EventCapacity = 64
