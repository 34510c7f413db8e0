package pdb

import (
	"errors"
	"fmt"
)

var (
	ErrNoAtoms    = errors.New("no ATOM or HETATM records could be parsed")
	ErrNoSequence = errors.New("no amino acid residues were found")
)

// ParseError is returned when PDB text is unusable. Line is 0 when the error
// concerns the file as a whole.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("The file '%s' could not be parsed on line %d: %s",
			e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("The file '%s' does not appear to be a valid PDB "+
		"file: %s.", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
