package fasta

import (
	"fmt"
	"io"

	"github.com/TuftsBCB/seq"
)

// An AlignedWriter writes the rows of a multiple or pairwise alignment. Gaps
// are written as '-'. Every row must have the same length.
type AlignedWriter struct {
	*Writer
	seqLen int
}

func NewAlignedWriter(w io.Writer) *AlignedWriter {
	return &AlignedWriter{
		Writer: NewWriter(w),
		seqLen: -1,
	}
}

// Write buffers one alignment row. An error is returned if its length
// differs from the rows already written.
func (w *AlignedWriter) Write(s seq.Sequence) error {
	if w.seqLen == -1 {
		w.seqLen = len(s.Residues)
	} else if w.seqLen != len(s.Residues) {
		return fmt.Errorf("Sequence '%s' has length %d, but other sequences "+
			"have length %d.", s.Name, len(s.Residues), w.seqLen)
	}
	return w.Writer.Write(s)
}

func (w *AlignedWriter) WriteAll(rows []seq.Sequence) error {
	for _, s := range rows {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}
