package pdb

import (
	"bufio"
	"fmt"
	"io"
)

// Write writes the coordinate records of an entry in PDB format. Residue
// names are written in their normalized form, which makes Read followed by
// Write a way to clean up force field specific names before handing a file
// to other tools.
//
// Atoms are renumbered sequentially. A TER record ends each chain.
func Write(w io.Writer, e *Entry) error {
	buf := bufio.NewWriter(w)
	serial := 0
	for _, c := range e.Chains {
		var last *Residue
		for _, r := range c.Residues {
			for _, a := range r.Atoms {
				serial++
				record := "ATOM"
				if a.Het {
					record = "HETATM"
				}
				altLoc := a.AltLoc
				if altLoc == 0 {
					altLoc = ' '
				}
				_, err := fmt.Fprintf(buf,
					"%-6s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f"+
						"          %2s\n",
					record, serial%100000, atomField(a.Name), altLoc, r.Name,
					c.Ident, r.SequenceNum, icodeOrSpace(r.InsertionCode),
					a.X, a.Y, a.Z, 1.0, 0.0, a.Element)
				if err != nil {
					return err
				}
			}
			last = r
		}
		if last != nil {
			serial++
			_, err := fmt.Fprintf(buf, "TER   %5d      %3s %c%4d\n",
				serial%100000, last.Name, c.Ident, last.SequenceNum)
			if err != nil {
				return err
			}
		}
	}
	if _, err := buf.WriteString("END\n"); err != nil {
		return err
	}
	return buf.Flush()
}

// Atom names of one letter elements start in column 14.
func atomField(name string) string {
	if len(name) >= 4 || (len(name) > 0 && name[0] >= '0' && name[0] <= '9') {
		return name
	}
	return " " + name
}

func icodeOrSpace(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}
