package demo

import "strings"

// Action is one showcase trigger.
type Action int

const (
	ActionCoins Action = iota
	ActionSparkles
	ActionShockwave
	ActionConfetti
	ActionFlame
	ActionGlowRing
	ActionFireworks
	ActionCeremony
	ActionCelebration
	ActionWeather
	ActionShake
	ActionFlash
	ActionVignette
	ActionClock
	ActionClear
	actionCount
)

var actionNames = [actionCount]string{
	ActionCoins:       "coins",
	ActionSparkles:    "sparkles",
	ActionShockwave:   "shockwave",
	ActionConfetti:    "confetti",
	ActionFlame:       "flame",
	ActionGlowRing:    "glow-ring",
	ActionFireworks:   "fireworks",
	ActionCeremony:    "ceremony",
	ActionCelebration: "celebration",
	ActionWeather:     "weather",
	ActionShake:       "shake",
	ActionFlash:       "flash",
	ActionVignette:    "vignette",
	ActionClock:       "clock",
	ActionClear:       "clear",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return Action(a), true
		}
	}
	return 0, false
}

// Actions lists every action in key order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// Keys are the host key bindings, one rune per action in Actions order.
const Keys = "1234567890qwert"

// ForKey maps a key rune to its action.
func ForKey(r rune) (Action, bool) {
	i := strings.IndexRune(Keys, r)
	if i < 0 {
		return 0, false
	}
	return Action(i), true
}

// Help renders the key bindings, one "key action" pair per line.
func Help() string {
	var b strings.Builder
	for i, r := range Keys {
		b.WriteRune(r)
		b.WriteByte(' ')
		b.WriteString(Action(i).String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Step fires Action once At seconds into each script loop.
type Step struct {
	At     float64
	Action Action
}

// DefaultScript walks through every effect once per loop. Weather steps
// come in fives so each loop ends where it started.
func DefaultScript() []Step {
	return []Step{
		{0.5, ActionCoins},
		{1.5, ActionSparkles},
		{2.0, ActionShockwave},
		{2.6, ActionConfetti},
		{3.4, ActionFlame},
		{4.0, ActionGlowRing},
		{4.5, ActionWeather}, // rain
		{5.5, ActionCoins},
		{6.0, ActionFireworks},
		{8.0, ActionCelebration},
		{11.5, ActionCeremony},
		{16.0, ActionWeather}, // snow
		{16.5, ActionShake},
		{17.0, ActionFlash},
		{18.0, ActionVignette},
		{18.5, ActionClock},
		{20.0, ActionCoins},
		{21.0, ActionWeather}, // leaves
		{23.0, ActionFireworks},
		{24.0, ActionWeather}, // storm
		{26.0, ActionVignette},
		{27.5, ActionWeather}, // clear
		{28.0, ActionConfetti},
	}
}
