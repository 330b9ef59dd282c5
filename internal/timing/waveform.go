package timing

import "math"

// Waveform holds two phase-related square-wave clock traces sampled over a
// fixed window. It depends only on the clock constants, never on path state,
// so callers may cache one instance for the life of the config.
type Waveform struct {
	Time    []float64 `json:"time"`
	Launch  []int     `json:"launch"`
	Capture []int     `json:"capture"`
}

// GenerateWaveform samples the launch and capture clocks at every multiple of
// step in [0, windowEnd]. Both clocks have 50% duty cycle; the launch clock
// is shifted by launchDelay.
func GenerateWaveform(windowEnd, step, clockPeriod, launchDelay float64) Waveform {
	n := int(math.Floor(windowEnd/step+0.5)) + 1
	w := Waveform{
		Time:    make([]float64, n),
		Launch:  make([]int, n),
		Capture: make([]int, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * step
		w.Time[i] = t
		w.Capture[i] = clockLevel(t, clockPeriod)
		w.Launch[i] = clockLevel(t-launchDelay, clockPeriod)
	}
	return w
}

// clockLevel returns 1 during the first half of the period, 0 during the
// second half.
func clockLevel(t, period float64) int {
	if floatMod(t, period) < period/2 {
		return 1
	}
	return 0
}

// floatMod is math.Mod folded into [0, y): a launch delay larger than t must
// not flip the sign of the remainder.
func floatMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m < 0 {
		m += y
	}
	return m
}
