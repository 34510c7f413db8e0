package pdb

// SecondaryStructure is the coarse secondary structure class of a residue.
type SecondaryStructure int

const (
	SSUnknown SecondaryStructure = iota
	SSHelix
	SSBeta
	SSTurn
	SSBend
	SSLoop
)

func (ss SecondaryStructure) String() string {
	switch ss {
	case SSHelix:
		return "helix"
	case SSBeta:
		return "beta"
	case SSTurn:
		return "turn"
	case SSBend:
		return "bend"
	case SSLoop:
		return "loop"
	}
	return "unknown"
}

func (ss SecondaryStructure) MarshalText() ([]byte, error) {
	return []byte(ss.String()), nil
}

// A span is a HELIX or SHEET range. Both ends are inclusive.
type span struct {
	ss         SecondaryStructure
	chain      byte
	start, end int
}

func (e *Entry) applySpans(spans []span) {
	for _, sp := range spans {
		c := e.Chain(sp.chain)
		if c == nil {
			continue
		}
		for _, r := range c.Residues {
			if r.SequenceNum >= sp.start && r.SequenceNum <= sp.end {
				r.SS = sp.ss
			}
		}
	}
}
