// Package timing implements the single-path setup-timing engine: a chain of
// inserted buffers between a launch flop and a capture flop, the arrival /
// required / slack computation derived from it, and the clock waveform data
// used by the renderers. Everything here is deterministic; the only mutable
// piece is PathState, which callers own explicitly.
package timing

// Variant identifies a buffer cell flavor.
type Variant string

const (
	// VariantNormal is the baseline buffer cell.
	VariantNormal Variant = "buffer"
	// VariantLVT is a low-threshold-voltage cell: faster, leakier.
	VariantLVT Variant = "LVT"
	// VariantHVT is a high-threshold-voltage cell: slower, leakage-resistant.
	VariantHVT Variant = "HVT"
)

// Valid reports whether v is one of the three known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantNormal, VariantLVT, VariantHVT:
		return true
	}
	return false
}

// Catalog maps buffer variants to their unit delay contribution. It is fixed
// at configuration time; there are no error paths because Variant is a closed
// set by construction.
type Catalog struct {
	BaseDelay float64
	LVTFactor float64
	HVTFactor float64
}

// Delay returns the delay contribution for a single buffer of the given
// variant. Unknown variants fall back to the base delay so a catalog lookup
// can never produce a hole in the chain.
func (c Catalog) Delay(v Variant) float64 {
	switch v {
	case VariantLVT:
		return c.BaseDelay * c.LVTFactor
	case VariantHVT:
		return c.BaseDelay * c.HVTFactor
	default:
		return c.BaseDelay
	}
}
