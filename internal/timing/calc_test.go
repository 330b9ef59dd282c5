package timing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slackTolerance = 1e-9

func testCatalog() Catalog {
	return Catalog{BaseDelay: 0.5, LVTFactor: 0.7, HVTFactor: 1.3}
}

func testConstants() Constants {
	return Constants{
		ClockPeriod:         5.0,
		FlopToFlopBaseDelay: 0.0,
		SetupTimePenalty:    0.2,
		LaunchClockDelay:    0.0,
		WindowEnd:           10.0,
		Step:                0.1,
	}
}

func TestComputeEmptyPath(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	b := Compute(s, testConstants())

	assert.InDelta(t, 0.0, b.ArrivalTime, slackTolerance)
	assert.InDelta(t, 5.0, b.RequiredTime, slackTolerance)
	assert.InDelta(t, 5.0, b.Slack, slackTolerance)
	assert.True(t, b.Met())

	require.Len(t, b.Stages, 2)
	assert.Equal(t, StartpointLabel, b.Stages[0].Label)
	assert.Equal(t, EndpointLabel, b.Stages[1].Label)
}

func TestComputeSingleNormalBuffer(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	require.True(t, s.AddBuffer(VariantNormal))

	b := Compute(s, testConstants())

	assert.InDelta(t, 0.5, b.ArrivalTime, slackTolerance)
	require.Len(t, b.Stages, 3)

	assert.Equal(t, StartpointLabel, b.Stages[0].Label)
	assert.InDelta(t, 0.0, b.Stages[0].Cumulative, slackTolerance)

	assert.Equal(t, "buffer buffer1", b.Stages[1].Label)
	assert.InDelta(t, 0.5, b.Stages[1].Incremental, slackTolerance)
	assert.InDelta(t, 0.5, b.Stages[1].Cumulative, slackTolerance)

	assert.Equal(t, EndpointLabel, b.Stages[2].Label)
	assert.InDelta(t, 0.0, b.Stages[2].Incremental, slackTolerance)
	assert.InDelta(t, 0.5, b.Stages[2].Cumulative, slackTolerance)
}

func TestComputeMixedVariants(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantLVT) // 0.5 * 0.7 = 0.35
	s.AddBuffer(VariantHVT) // 0.5 * 1.3 = 0.65

	b := Compute(s, testConstants())

	assert.InDelta(t, 1.0, b.ArrivalTime, slackTolerance)
	require.Len(t, b.Stages, 4)
	assert.Equal(t, "LVT buffer1", b.Stages[1].Label)
	assert.Equal(t, "HVT buffer2", b.Stages[2].Label)

	t.Run("setup check subtracts the penalty", func(t *testing.T) {
		s.SetSetupCheck(true)
		b := Compute(s, testConstants())
		assert.InDelta(t, 4.8, b.RequiredTime, slackTolerance)
		assert.InDelta(t, 3.8, b.Slack, slackTolerance)
		assert.True(t, b.Met())
	})
}

func TestComputePositionNumberingSpansVariants(t *testing.T) {
	// The 1-based position counts all buffers regardless of variant mix.
	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantNormal)
	s.AddBuffer(VariantHVT)
	s.AddBuffer(VariantLVT)

	b := Compute(s, testConstants())
	require.Len(t, b.Stages, 5)
	assert.Equal(t, "buffer buffer1", b.Stages[1].Label)
	assert.Equal(t, "HVT buffer2", b.Stages[2].Label)
	assert.Equal(t, "LVT buffer3", b.Stages[3].Label)
}

func TestComputeFlopToFlopBaseDelay(t *testing.T) {
	c := testConstants()
	c.FlopToFlopBaseDelay = 0.3

	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantNormal)

	b := Compute(s, c)
	assert.InDelta(t, 0.8, b.ArrivalTime, slackTolerance)
	assert.InDelta(t, 0.8, b.Stages[len(b.Stages)-1].Cumulative, slackTolerance)
}

func TestComputeDeterministic(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantNormal)
	s.AddBuffer(VariantLVT)
	s.SetSetupCheck(true)

	first := Compute(s, testConstants())
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Compute(s, testConstants())); diff != "" {
			t.Fatalf("breakdown changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestComputeCumulativeMonotonic(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	for i := 0; i < 12; i++ {
		s.AddBuffer([]Variant{VariantNormal, VariantLVT, VariantHVT}[i%3])
	}

	b := Compute(s, testConstants())
	for i := 1; i < len(b.Stages); i++ {
		assert.GreaterOrEqual(t, b.Stages[i].Cumulative, b.Stages[i-1].Cumulative,
			"stage %d cumulative decreased", i)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantNormal)
	s.SetSetupCheck(true)

	before := Compute(s, testConstants())
	s.AddBuffer(VariantHVT)
	s.RemoveLast()
	after := Compute(s, testConstants())

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("add+remove is not a round trip (-before +after):\n%s", diff)
	}
}

func TestResetMatchesFreshState(t *testing.T) {
	s := NewPathState(testCatalog(), 0)
	s.AddBuffer(VariantNormal)
	s.AddBuffer(VariantLVT)
	s.AddBuffer(VariantHVT)
	s.SetSetupCheck(true)
	s.RemoveLast()
	s.Reset()

	fresh := NewPathState(testCatalog(), 0)
	if diff := cmp.Diff(Compute(fresh, testConstants()), Compute(s, testConstants())); diff != "" {
		t.Fatalf("reset state differs from fresh state (-fresh +reset):\n%s", diff)
	}
}

func TestSlackSign(t *testing.T) {
	tests := []struct {
		name    string
		buffers int
		met     bool
	}{
		{"well under the period", 2, true},
		{"exactly at the period", 10, true}, // 10 * 0.5 = 5.0, slack 0 is MET
		{"over the period", 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPathState(testCatalog(), 0)
			for i := 0; i < tt.buffers; i++ {
				s.AddBuffer(VariantNormal)
			}
			b := Compute(s, testConstants())
			assert.InDelta(t, b.RequiredTime-b.ArrivalTime, b.Slack, slackTolerance)
			assert.Equal(t, tt.met, b.Met())
		})
	}
}
