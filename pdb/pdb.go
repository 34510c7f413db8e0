package pdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

type pdbParser struct {
	entry *Entry
	line  []byte
	num   int

	// Set after the first ENDMDL. Nothing past it is read.
	modelDone bool
	spans     []span
}

// ReadFile reads the PDB file at the path given. If the file name ends in
// ".gz", it is decompressed on the fly.
func ReadFile(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, fp)
}

// Read parses PDB formatted text. The name given is only used to fill in
// Entry.Path and to make error messages more useful.
//
// A *ParseError is returned if the input has no atom records, or if none of
// its residues is an amino acid.
func Read(r io.Reader, name string) (*Entry, error) {
	parser := pdbParser{
		entry: NewEntry(name),
		spans: make([]span, 0, 8),
	}

	// We ignore 'isPrefix' here, since we never care about lines longer
	// than 1000 characters, which is the size of our buffer.
	breader := bufio.NewReaderSize(r, 1000)
	for {
		line, _, err := breader.ReadLine()
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		parser.num++
		parser.line = line
		if err := parser.parseLine(); err != nil {
			return nil, err
		}
	}

	entry := parser.entry
	if entry.NumAtoms() == 0 {
		return nil, &ParseError{Path: name, Err: ErrNoAtoms}
	}
	if len(entry.StandardResidues()) == 0 {
		return nil, &ParseError{Path: name, Err: ErrNoSequence}
	}
	entry.applySpans(parser.spans)

	// If we couldn't find an Id code, inspect the base name of the file path.
	if len(entry.IdCode) == 0 && len(name) > 0 {
		base := strings.TrimSuffix(path.Base(name), ".gz")
		entry.IdCode = strings.TrimSuffix(base, path.Ext(base))
	}
	return entry, nil
}

func (p *pdbParser) parseLine() error {
	switch p.cols(1, 6) {
	case "HEADER":
		p.entry.IdCode = p.cols(63, 66)
	case "ENDMDL":
		p.modelDone = true
	case "HELIX":
		p.parseSpan(SSHelix, 20, 22, 25, 34, 37)
	case "SHEET":
		p.parseSpan(SSBeta, 22, 23, 26, 34, 37)
	case "ATOM":
		return p.parseAtom(false)
	case "HETATM":
		return p.parseAtom(true)
	}
	return nil
}

// parseSpan records a HELIX or SHEET span. Secondary structure records are
// annotations, so one with an unreadable residue range is skipped.
func (p *pdbParser) parseSpan(ss SecondaryStructure,
	chainCol, startFrom, startTo, endFrom, endTo int) {

	start, err := p.atoi(startFrom, startTo)
	if err != nil {
		return
	}
	end, err := p.atoi(endFrom, endTo)
	if err != nil {
		return
	}

	// Spans crossing chains don't happen in practice, so the end chain is
	// ignored.
	p.spans = append(p.spans, span{ss, p.at(chainCol), start, end})
}

func (p *pdbParser) parseAtom(het bool) error {
	if p.modelDone {
		return nil
	}

	seqNum, err := p.atoi(23, 26)
	if err != nil {
		return p.errorf(err)
	}
	atom := Atom{
		Name:    p.cols(13, 16),
		AltLoc:  p.at(17),
		Element: strings.ToUpper(p.cols(77, 78)),
		Het:     het,
	}
	if atom.Serial, err = p.atoi(7, 11); err != nil {
		// Serial numbers overflow in large files. They're never used for
		// anything important, so don't fail on them.
		atom.Serial = 0
	}
	if atom.X, err = p.atof(31, 38); err != nil {
		return p.errorf(err)
	}
	if atom.Y, err = p.atof(39, 46); err != nil {
		return p.errorf(err)
	}
	if atom.Z, err = p.atof(47, 54); err != nil {
		return p.errorf(err)
	}

	icode := p.at(27)
	if icode == 0 {
		icode = ' '
	}
	chain := p.at(22)
	if chain == 0 {
		chain = ' '
	}
	p.entry.addAtom(chain, p.cols(18, 20), seqNum, icode, atom)
	return nil
}

func (p *pdbParser) errorf(err error) error {
	return &ParseError{Path: p.entry.Path, Line: p.num, Err: err}
}

func (p pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

func (p pdbParser) cols(start, end int) string {
	rs, re := start-1, end
	if rs >= len(p.line) || rs < 0 {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < 0 || re < rs {
		return ""
	}
	return string(bytes.TrimSpace(p.line[rs:re]))
}

func (p pdbParser) at(column int) byte {
	i := column - 1
	if i < 0 || i >= len(p.line) {
		return 0
	}
	return p.line[i]
}
