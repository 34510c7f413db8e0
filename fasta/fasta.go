package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/seq"
)

// Format returns s in FASTA format with its residues wrapped at cols
// columns. If cols <= 0, then no wrapping is done.
func Format(s seq.Sequence, cols int) string {
	residues := make([]byte, len(s.Residues))
	for i, r := range s.Residues {
		residues[i] = byte(r)
	}
	if cols <= 0 || len(residues) == 0 {
		return fmt.Sprintf(">%s\n%s", s.Name, residues)
	}

	wrapped := make([]string, 1+((len(residues)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(residues) {
			end = len(residues)
		}
		wrapped[i] = string(residues[start:end])
	}
	return fmt.Sprintf(">%s\n%s", s.Name, strings.Join(wrapped, "\n"))
}

// A Reader reads sequences from FASTA encoded input. It is not safe for
// concurrent use.
type Reader struct {
	buf        *bufio.Reader
	line       int
	nextHeader []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{
		buf:  bufio.NewReader(r),
		line: 1,
	}
}

// ReadAll reads every remaining sequence. Reading stops at the first error.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	all := make([]seq.Sequence, 0, 8)
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

// Read returns the next sequence, or io.EOF when the input is exhausted.
//
// Blank lines, and leading and trailing whitespace, are ignored.
func (r *Reader) Read() (seq.Sequence, error) {
	s := seq.Sequence{}
	seenHeader := false
	if r.nextHeader != nil {
		s.Name = trimHeader(r.nextHeader)
		r.nextHeader = nil
		seenHeader = true
	}
	for {
		line, err := r.buf.ReadBytes('\n')
		if err == io.EOF {
			if len(line) == 0 {
				if seenHeader {
					return s, nil
				}
				return seq.Sequence{}, io.EOF
			}
		} else if err != nil {
			return seq.Sequence{}, err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			r.line++
			continue
		}

		if !seenHeader {
			if line[0] != '>' {
				return seq.Sequence{}, fmt.Errorf(
					"Expected '>' on line %d, got '%c'.", r.line, line[0])
			}
			s.Name = trimHeader(line)
			seenHeader = true
			r.line++
			continue
		} else if line[0] == '>' {
			r.nextHeader = line
			r.line++
			return s, nil
		}

		for _, b := range line {
			res, ok := translate(b)
			if !ok {
				return seq.Sequence{}, fmt.Errorf(
					"Invalid character '%c' on line %d.", b, r.line)
			}
			s.Residues = append(s.Residues, res)
		}
		r.line++
	}
}

func translate(b byte) (seq.Residue, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		b -= 'a' - 'A'
	case b >= 'A' && b <= 'Z':
	case b == '*', b == '-':
	default:
		return 0, false
	}
	return seq.Residue(b), true
}

func trimHeader(line []byte) string {
	return string(bytes.TrimSpace(bytes.TrimLeft(line, ">")))
}

// A Writer writes sequences in FASTA format. Headers are never wrapped.
type Writer struct {
	// Columns at which residues are wrapped. Defaults to 60; a value <= 0
	// disables wrapping.
	Columns int
	buf     *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write buffers a single sequence. Call Flush to write it out.
func (w *Writer) Write(s seq.Sequence) error {
	_, err := w.buf.WriteString(Format(s, w.Columns) + "\n")
	return err
}

// WriteAll writes every sequence and flushes.
func (w *Writer) WriteAll(all []seq.Sequence) error {
	for _, s := range all {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}
