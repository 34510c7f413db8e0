package compare

import "strings"

// IC50 is a half maximal inhibitory concentration as reported, in any of
// nM, μM (also written uM or µM) or mM.
type IC50 struct {
	Value float64 `yaml:"value" json:"value"`
	Unit  string  `yaml:"unit" json:"unit"`
}

// NanoMolar normalizes the measurement to nM. Unknown units are assumed to
// be nM already.
func (c IC50) NanoMolar() float64 {
	return NormalizeIC50(c.Value, c.Unit)
}

// NormalizeIC50 converts value, measured in unit, to nM. The unit is
// matched without regard to case or surrounding space. Unrecognised units
// leave the value unchanged.
func NormalizeIC50(value float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "μm", "µm", "um":
		return value * 1e3
	case "mm":
		return value * 1e6
	}
	return value
}

// FoldChange is the variant's IC50 over the reference's, both in nM. Values
// above 1 mean the variant is less potent. It is zero when the reference
// IC50 is not positive.
func FoldChange(reference, variant IC50) float64 {
	r := reference.NanoMolar()
	if r <= 0 {
		return 0
	}
	return variant.NanoMolar() / r
}
