// Package config reads analysis settings from a YAML file.
//
// Every key is optional. Missing keys keep the defaults of the graph, motif
// and sasa packages, so an empty file is a valid configuration:
//
//	graph:
//	  granularity: atom
//	  distance_threshold: 8
//	  long_range_separation: 5
//	  pharmacophore: K–W–Y
//	motif:
//	  patch_distance: 12
//	sasa:
//	  compute: true
//	  probe: 1.4
//	dssp_binary: mkdssp
//	workers: 4
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DeuxMachin/toxgraph/analysis"
	"github.com/DeuxMachin/toxgraph/graph"
	"github.com/DeuxMachin/toxgraph/motif"
	"github.com/DeuxMachin/toxgraph/sasa"
)

var ErrInvalid = errors.New("invalid configuration")

type SASA struct {
	Compute      bool `yaml:"compute"`
	sasa.Options `yaml:",inline"`
}

type Config struct {
	Graph graph.Options `yaml:"graph"`
	Motif motif.Options `yaml:"motif"`
	SASA  SASA          `yaml:"sasa"`

	// Optional DSSP executable, run on structures given by path.
	DSSPBinary string `yaml:"dssp_binary,omitempty"`

	// Number of structures analyzed concurrently. Zero means one per CPU.
	Workers int `yaml:"workers"`
}

func Default() Config {
	return Config{
		Graph: graph.DefaultOptions(),
		Motif: motif.DefaultOptions(),
		SASA:  SASA{Compute: true, Options: sasa.DefaultOptions()},
	}
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("Could not read configuration '%s': %w",
			path, err)
	}
	return c, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := c.Graph.Validate(); err != nil {
		return err
	}
	m := c.Motif
	switch {
	case m.MinBetaResidues < 1, m.MinDisulfideBonds < 1,
		m.MinDisulfideResidues < 1, m.MinPatchResidues < 2:
		return fmt.Errorf("%w: motif residue and bond counts must be "+
			"positive, and patches need at least 2 residues", ErrInvalid)
	case !(m.PatchDistance > 0):
		return fmt.Errorf("%w: patch distance must be positive, got %g",
			ErrInvalid, m.PatchDistance)
	case c.SASA.Probe < 0:
		return fmt.Errorf("%w: probe radius must not be negative, got %g",
			ErrInvalid, c.SASA.Probe)
	case c.SASA.Points < 1:
		return fmt.Errorf("%w: need at least one sphere point, got %d",
			ErrInvalid, c.SASA.Points)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d",
			ErrInvalid, c.Workers)
	}
	return nil
}

// Options converts the configuration for use with package analysis. The
// caller still has to set a logger.
func (c Config) Options() analysis.Options {
	return analysis.Options{
		Graph:       c.Graph,
		Motif:       c.Motif,
		ComputeSASA: c.SASA.Compute,
		SASA:        c.SASA.Options,
		DSSPBinary:  c.DSSPBinary,
	}
}

// Write encodes c as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
