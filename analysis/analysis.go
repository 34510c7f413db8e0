// Package analysis runs the whole pipeline on toxin structures: load the
// structure and any charges or accessibility data, build the graph, then
// derive metrics, motifs, the dipole moment and (for atom graphs) residue
// segments.
//
// Each run is independent, so RunAll processes many structures concurrently.
package analysis

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/DeuxMachin/toxgraph/compare"
	"github.com/DeuxMachin/toxgraph/dipole"
	"github.com/DeuxMachin/toxgraph/dssp"
	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/metrics"
	"github.com/DeuxMachin/toxgraph/motif"
	"github.com/DeuxMachin/toxgraph/pdb"
	"github.com/DeuxMachin/toxgraph/psf"
	"github.com/DeuxMachin/toxgraph/sasa"
	"github.com/DeuxMachin/toxgraph/segment"
)

type Options struct {
	Graph graph.Options
	Motif motif.Options

	// ComputeSASA estimates accessibility with Shrake-Rupley when no DSSP
	// data is available. Without either, no residue counts as surface.
	ComputeSASA bool
	SASA        sasa.Options

	// DSSPBinary, when set, is run on Input.Path if Input.DSSP is empty.
	DSSPBinary string

	// Logger receives progress and recovered failures. The zero value
	// discards.
	Logger logr.Logger
}

func DefaultOptions() Options {
	return Options{
		Graph:       graph.DefaultOptions(),
		Motif:       motif.DefaultOptions(),
		ComputeSASA: true,
		SASA:        sasa.DefaultOptions(),
	}
}

// Input is one structure to analyze. The PDB text comes from PDB, or from
// the file at Path when PDB is empty. PSF and DSSP are optional.
type Input struct {
	Name string
	Path string
	PDB  []byte
	PSF  []byte
	DSSP []byte
}

// Analysis is everything derived from one structure.
type Analysis struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Granularity graph.Granularity `json:"granularity"`

	// Number of atoms that received a PSF charge.
	ChargedAtoms int `json:"charged_atoms"`

	// Where residue accessibility came from: "dssp", "sasa" or "".
	Accessibility string `json:"accessibility,omitempty"`

	Metrics  metrics.GraphMetrics `json:"metrics"`
	Motifs   motif.Flags          `json:"motifs"`
	Dipole   dipole.Dipole        `json:"dipole"`
	Segments []segment.Segment    `json:"segments,omitempty"`

	Entry *pdb.Entry   `json:"-"`
	Graph *graph.Graph `json:"-"`
}

// Profile packages the analysis for comparison with another one.
func (a *Analysis) Profile(ic50 *compare.IC50) compare.Profile {
	return compare.Profile{
		Entry:    a.Entry,
		Metrics:  a.Metrics,
		Segments: a.Segments,
		IC50:     ic50,
	}
}

// Run analyzes a single structure.
//
// Loading, graph construction and dipole errors are returned as is, so the
// typed errors of packages pdb, graph and dipole can be inspected. Metric
// failures are never returned; see package metrics.
func Run(ctx context.Context, in Input, opts Options) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := opts.Logger.WithValues("structure", in.Name)
	entry, err := load(in)
	if err != nil {
		return nil, err
	}
	a := &Analysis{
		ID:          uuid.New(),
		Name:        in.Name,
		Granularity: opts.Graph.Granularity,
		Entry:       entry,
	}
	if a.Name == "" {
		a.Name = entry.IdCode
	}

	if len(in.PSF) > 0 {
		f, err := psf.Read(bytes.NewReader(in.PSF))
		if err != nil {
			return nil, err
		}
		a.ChargedAtoms = f.Apply(entry)
		log.V(1).Info("applied PSF charges", "atoms", a.ChargedAtoms,
			"net", f.TotalCharge())
	}
	if err := a.accessibility(ctx, in, opts, log); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := graph.Build(entry, opts.Graph)
	if err != nil {
		return nil, err
	}
	a.Graph = g
	log.Info("built graph", "granularity", g.Granularity.String(),
		"nodes", g.NumNodes(), "edges", g.NumEdges())

	a.Metrics = metrics.Engine{Logger: log}.Compute(g)
	a.Motifs = motif.Detect(g, opts.Motif)
	if a.Dipole, err = dipole.FromEntry(entry); err != nil {
		return nil, err
	}
	if g.Granularity == graph.AtomLevel {
		a.Segments, err = segment.Segmenter{Logger: log}.ByResidue(g)
		if err != nil {
			return nil, err
		}
	}
	log.Info("analysis complete", "id", a.ID.String(),
		"communities", a.Metrics.CommunityCount,
		"cystine_knot", a.Motifs.CystineKnot,
		"dipole", a.Dipole.Magnitude)
	return a, nil
}

func load(in Input) (*pdb.Entry, error) {
	if len(in.PDB) > 0 {
		name := in.Path
		if name == "" {
			name = in.Name
		}
		return pdb.Read(bytes.NewReader(in.PDB), name)
	}
	if in.Path == "" {
		return nil, fmt.Errorf("No structure was given for '%s'.", in.Name)
	}
	return pdb.ReadFile(in.Path)
}

// accessibility fills in per-residue SASA and, for DSSP, secondary
// structure. DSSP output takes precedence over the Shrake-Rupley estimate.
func (a *Analysis) accessibility(ctx context.Context, in Input, opts Options,
	log logr.Logger) error {

	var records []dssp.Record
	var err error
	switch {
	case len(in.DSSP) > 0:
		records, err = dssp.Read(bytes.NewReader(in.DSSP))
	case opts.DSSPBinary != "" && in.Path != "":
		records, err = dssp.Run(ctx, opts.DSSPBinary, in.Path)
	}
	if err != nil {
		return err
	}
	if len(records) > 0 {
		n := dssp.Apply(a.Entry, records)
		a.Accessibility = "dssp"
		log.V(1).Info("applied DSSP", "residues", n)
		return nil
	}
	if opts.ComputeSASA {
		sasa.Apply(a.Entry, opts.SASA)
		a.Accessibility = "sasa"
	}
	return nil
}
