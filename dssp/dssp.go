// Package dssp reads the classic output format of DSSP (and mkdssp) and uses
// it to annotate residues with their secondary structure and solvent
// accessibility.
//
// See https://swift.cmbi.umcn.nl/gv/dssp/ for the format.
package dssp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/DeuxMachin/toxgraph/pdb"
)

type Record struct {
	Chain       byte
	SequenceNum int
	Insertion   byte
	Amino       byte
	Code        byte
	ACC         float64
}

// Secondary returns the coarse secondary structure of the record's DSSP code.
func (r Record) Secondary() pdb.SecondaryStructure {
	return Classify(r.Code)
}

// Classify maps one letter DSSP codes to coarse classes. H, G and I are
// helices, B and E are beta, T is a turn, S is a bend and a blank (or '-') is
// a loop.
func Classify(code byte) pdb.SecondaryStructure {
	switch code {
	case 'H', 'G', 'I':
		return pdb.SSHelix
	case 'B', 'E':
		return pdb.SSBeta
	case 'T':
		return pdb.SSTurn
	case 'S':
		return pdb.SSBend
	case ' ', '-':
		return pdb.SSLoop
	}
	return pdb.SSUnknown
}

// Read parses DSSP output. Residue lines start after the header line whose
// third character is '#'. Chain break lines ('!') are skipped.
func Read(r io.Reader) ([]Record, error) {
	records := make([]Record, 0, 64)
	scanner := bufio.NewScanner(r)
	start := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		l := scanner.Text()
		if !start {
			if len(l) > 2 && l[2] == '#' {
				start = true
			}
			continue
		}
		if len(l) < 38 || l[13] == '!' {
			continue
		}
		numStr := strings.TrimSpace(l[5:10])
		if len(numStr) == 0 {
			continue
		}
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return nil, fmt.Errorf("Bad residue number on line %d of DSSP "+
				"output: %s", lineNum, err)
		}
		acc, err := strconv.ParseFloat(strings.TrimSpace(l[34:38]), 64)
		if err != nil {
			return nil, fmt.Errorf("Bad accessibility on line %d of DSSP "+
				"output: %s", lineNum, err)
		}
		records = append(records, Record{
			Chain:       l[11],
			SequenceNum: num,
			Insertion:   l[10],
			Amino:       l[13],
			Code:        l[16],
			ACC:         acc,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !start {
		return nil, fmt.Errorf("The input does not look like DSSP output: " +
			"no residue header line was found.")
	}
	return records, nil
}

// Apply sets the secondary structure and SASA of every residue in entry that
// has a DSSP record. The number of residues annotated is returned.
func Apply(entry *pdb.Entry, records []Record) int {
	type key struct {
		chain byte
		num   int
	}
	byKey := make(map[key]Record, len(records))
	for _, r := range records {
		byKey[key{r.Chain, r.SequenceNum}] = r
	}

	n := 0
	for _, res := range entry.Residues() {
		rec, ok := byKey[key{res.Chain, res.SequenceNum}]
		if !ok {
			continue
		}
		res.SS = rec.Secondary()
		res.SASA = rec.ACC
		res.HasSASA = true
		n++
	}
	return n
}

// Run executes a DSSP binary (usually "mkdssp") on the PDB file at path and
// parses its output.
func Run(ctx context.Context, binary, path string) ([]Record, error) {
	cmd := exec.CommandContext(ctx, binary, "-i", path)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("Could not run '%s' on '%s': %w",
			binary, path, err)
	}
	return Read(bytes.NewReader(out))
}
