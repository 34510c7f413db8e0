package amino

import (
	"strings"

	"github.com/TuftsBCB/seq"
)

// Unknown is the one letter code given to anything that isn't one of the
// twenty standard amino acids.
const Unknown seq.Residue = 'X'

var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

// variants maps protonation states, force field names and common
// modifications to the standard residue they derive from.
var variants = map[string]string{
	// histidine protonation states (CHARMM and AMBER)
	"HSD": "HIS", "HSE": "HIS", "HSP": "HIS",
	"HIE": "HIS", "HID": "HIS", "HIP": "HIS",

	// cysteines: bonded, deprotonated and modified
	"CYX": "CYS", "CYM": "CYS", "SEC": "CYS", "CYZ": "CYS",
	"CSS": "CYS", "CSH": "CYS", "CME": "CYS",

	"ASH": "ASP", "GLH": "GLU", "LYN": "LYS", "ARN": "ARG", "TYM": "TYR",

	"MSE": "MET", "PCA": "GLU",

	// phosphorylated
	"TPO": "THR", "SEP": "SER", "PTR": "TYR",

	"M3L": "LYS", "MLE": "LEU", "HYP": "PRO", "SAR": "GLY",

	// D amino acids
	"DAL": "ALA", "DLY": "LYS", "DPN": "PHE", "DVA": "VAL", "DSN": "SER",
}

// Normalize returns the canonical three letter name for a residue name read
// from a structure file. Known variants are mapped to their standard residue.
// Anything else is returned upper cased and trimmed, but otherwise untouched.
func Normalize(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if std, ok := variants[name]; ok {
		return std
	}
	return name
}

// OneLetter returns the one letter code of a (normalized) three letter
// residue name, or Unknown.
func OneLetter(three string) seq.Residue {
	if r, ok := aminoMap[Normalize(three)]; ok {
		return r
	}
	return Unknown
}

// IsStandard reports whether the name normalizes to one of the twenty
// standard amino acids.
func IsStandard(three string) bool {
	_, ok := aminoMap[Normalize(three)]
	return ok
}

// ThreeLetter is the inverse of OneLetter. Unknown residues give "UNK".
func ThreeLetter(r seq.Residue) string {
	for three, one := range aminoMap {
		if one == r {
			return three
		}
	}
	return "UNK"
}
