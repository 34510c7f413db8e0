package amino

import "github.com/TuftsBCB/seq"

// Kyte-Doolittle hydrophobicity.
var hydrophobicity = map[seq.Residue]float64{
	'A': 1.8, 'R': -4.5, 'N': -3.5, 'D': -3.5, 'C': 2.5,
	'Q': -3.5, 'E': -3.5, 'G': -0.4, 'H': -3.2, 'I': 4.5,
	'L': 3.8, 'K': -3.9, 'M': 1.9, 'F': 2.8, 'P': -1.6,
	'S': -0.8, 'T': -0.7, 'W': -0.9, 'Y': -1.3, 'V': 4.2,
}

// Net side chain charge at physiological pH. Histidine is counted as half
// protonated.
var charge = map[seq.Residue]float64{
	'R': 1, 'K': 1, 'D': -1, 'E': -1, 'H': 0.5,
}

// Hydrophobicity returns the Kyte-Doolittle value of the residue, or 0 for
// unknown residues.
func Hydrophobicity(r seq.Residue) float64 {
	return hydrophobicity[r]
}

// Charge returns the residue level partial charge used when no per-atom
// charges are available.
func Charge(r seq.Residue) float64 {
	return charge[r]
}

// Class is a coarse physicochemical category of a residue.
type Class int

const (
	Other Class = iota
	Hydrophobic
	Polar
	Positive
	Negative
	Cysteine
)

func (c Class) String() string {
	switch c {
	case Hydrophobic:
		return "hydrophobic"
	case Polar:
		return "polar"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Cysteine:
		return "cysteine"
	}
	return "other"
}

// MarshalText lets classes show up by name in JSON and YAML output.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func Classify(r seq.Residue) Class {
	switch r {
	case 'A', 'V', 'I', 'L', 'M', 'F', 'Y', 'W':
		return Hydrophobic
	case 'S', 'T', 'N', 'Q':
		return Polar
	case 'K', 'R', 'H':
		return Positive
	case 'D', 'E':
		return Negative
	case 'C':
		return Cysteine
	}
	return Other
}
