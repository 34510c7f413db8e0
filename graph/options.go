package graph

import (
	"fmt"
)

const (
	DefaultDistanceThreshold   = 10.0
	DefaultLongRangeSeparation = 5
	DefaultDisulfideCutoff     = 2.2
	DefaultSurfaceThreshold    = 25.0
)

type Options struct {
	Granularity Granularity `yaml:"granularity" json:"granularity"`

	// Nodes no further apart than this (in Å) get a distance edge.
	DistanceThreshold float64 `yaml:"distance_threshold" json:"distance_threshold"`

	// Edges between residues more than this many positions apart in
	// sequence are marked long-range.
	LongRangeSeparation int `yaml:"long_range_separation" json:"long_range_separation"`

	// When set, distance edges are only added between residues at least
	// LongRangeSeparation apart (or on different chains).
	LongRangeOnly bool `yaml:"long_range_only" json:"long_range_only"`

	DisulfideCutoff  float64 `yaml:"disulfide_cutoff" json:"disulfide_cutoff"`
	SurfaceThreshold float64 `yaml:"surface_threshold" json:"surface_threshold"`

	// Pharmacophore is a pattern like "K–W–Y" (parts separated by an en
	// dash or a hyphen). Residues matching a part are tagged with it.
	Pharmacophore string `yaml:"pharmacophore" json:"pharmacophore,omitempty"`

	// Drop hydrogen atoms from atom graphs.
	Deprotonate bool `yaml:"deprotonate" json:"deprotonate"`
}

func DefaultOptions() Options {
	return Options{
		Granularity:         ResidueLevel,
		DistanceThreshold:   DefaultDistanceThreshold,
		LongRangeSeparation: DefaultLongRangeSeparation,
		DisulfideCutoff:     DefaultDisulfideCutoff,
		SurfaceThreshold:    DefaultSurfaceThreshold,
	}
}

func (o Options) Validate() error {
	switch {
	case !(o.DistanceThreshold > 0):
		return fmt.Errorf("%w: distance threshold must be positive, got %g",
			ErrInvalidOptions, o.DistanceThreshold)
	case o.LongRangeSeparation < 0:
		return fmt.Errorf("%w: long range separation must not be negative, "+
			"got %d", ErrInvalidOptions, o.LongRangeSeparation)
	case !(o.DisulfideCutoff > 0):
		return fmt.Errorf("%w: disulfide cutoff must be positive, got %g",
			ErrInvalidOptions, o.DisulfideCutoff)
	case o.SurfaceThreshold < 0:
		return fmt.Errorf("%w: surface threshold must not be negative, got %g",
			ErrInvalidOptions, o.SurfaceThreshold)
	}
	return nil
}
