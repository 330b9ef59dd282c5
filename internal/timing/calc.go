package timing

import "fmt"

// Labels for the synthetic first and last stages of every path.
const (
	StartpointLabel = "startflop"
	EndpointLabel   = "endflop"
)

// Constants are the fixed path and clock parameters. They come from config,
// not from user events, and are immutable for the lifetime of a computation.
type Constants struct {
	ClockPeriod         float64
	FlopToFlopBaseDelay float64
	SetupTimePenalty    float64
	LaunchClockDelay    float64
	WindowEnd           float64
	Step                float64
}

// Stage is one row of the per-stage delay breakdown. Delays are stored at
// full precision; rounding happens only when a renderer formats them.
type Stage struct {
	Label       string  `json:"label"`
	Variant     Variant `json:"variant,omitempty"`
	Incremental float64 `json:"incremental"`
	Cumulative  float64 `json:"cumulative"`
}

// Breakdown is the derived timing picture for one path state. It is
// recomputed in full on every query and never persisted; two calls with the
// same state yield identical breakdowns.
type Breakdown struct {
	Stages       []Stage `json:"stages"`
	ArrivalTime  float64 `json:"arrival_time"`
	RequiredTime float64 `json:"required_time"`
	Slack        float64 `json:"slack"`
	SetupCheck   bool    `json:"setup_check"`
}

// Met reports whether the timing constraint is satisfied.
func (b Breakdown) Met() bool { return b.Slack >= 0 }

// Compute walks the buffer chain in data-path order and derives the full
// breakdown: a synthetic start-flop stage, one stage per buffer, and a
// synthetic end-flop stage that adds the fixed flop-to-flop net delay. The
// whole chain is recomputed every time; with chains this small an
// incremental running total would buy nothing and cost the idempotence
// guarantee its callers rely on.
func Compute(s *PathState, c Constants) Breakdown {
	stages := make([]Stage, 0, s.Len()+2)
	stages = append(stages, Stage{Label: StartpointLabel})

	cumulative := 0.0
	for i, buf := range s.Chain() {
		cumulative += buf.Delay
		stages = append(stages, Stage{
			Label:       fmt.Sprintf("%s buffer%d", buf.Variant, i+1),
			Variant:     buf.Variant,
			Incremental: buf.Delay,
			Cumulative:  cumulative,
		})
	}

	cumulative += c.FlopToFlopBaseDelay
	stages = append(stages, Stage{Label: EndpointLabel, Cumulative: cumulative})

	penalty := 0.0
	if s.SetupCheck() {
		penalty = c.SetupTimePenalty
	}
	required := c.ClockPeriod - penalty

	return Breakdown{
		Stages:       stages,
		ArrivalTime:  cumulative,
		RequiredTime: required,
		Slack:        required - cumulative,
		SetupCheck:   s.SetupCheck(),
	}
}
