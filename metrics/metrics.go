// Package metrics computes graph-theoretic descriptors of structure graphs:
// density, degree, clustering, connectivity, four node centralities and a
// greedy modularity community partition.
//
// A single failing measure never fails the whole computation. It is logged,
// replaced by zero (or an empty map) and named in GraphMetrics.Failures.
package metrics

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/DeuxMachin/toxgraph/graph"
)

// ErrMetricFailure wraps panics recovered while computing a measure.
var ErrMetricFailure = errors.New("metric computation failed")

// Centrality measure names, used as keys of GraphMetrics.Stats and in
// GraphMetrics.Failures.
const (
	MeasureDegree      = "degree"
	MeasureBetweenness = "betweenness"
	MeasureCloseness   = "closeness"
	MeasureEigenvector = "eigenvector"
	MeasureCommunity   = "community"
	MeasureClustering  = "clustering"
	MeasureComponents  = "components"
)

type Centrality struct {
	Degree      map[string]float64 `json:"degree"`
	Betweenness map[string]float64 `json:"betweenness"`
	Closeness   map[string]float64 `json:"closeness"`
	Eigenvector map[string]float64 `json:"eigenvector"`
	Clustering  map[string]float64 `json:"clustering"`
}

type GraphMetrics struct {
	NumNodes      int     `json:"num_nodes"`
	NumEdges      int     `json:"num_edges"`
	Density       float64 `json:"density"`
	AvgDegree     float64 `json:"avg_degree"`
	AvgClustering float64 `json:"avg_clustering"`
	NumComponents int     `json:"num_components"`

	Centrality Centrality       `json:"centrality"`
	Stats      map[string]Stats `json:"centrality_stats"`

	CommunityCount int        `json:"community_count"`
	Modularity     float64    `json:"modularity"`
	Communities    [][]string `json:"communities,omitempty"`

	Summary Summary `json:"summary"`

	// Measures that failed and were replaced by zero values.
	Failures []string `json:"failures,omitempty"`
}

// Engine computes GraphMetrics. The zero value is ready to use and discards
// its log output.
type Engine struct {
	Logger logr.Logger
}

// Compute is Engine{}.Compute.
func Compute(g *graph.Graph) GraphMetrics {
	return Engine{}.Compute(g)
}

// Compute derives every metric of g. It never fails: see the package
// documentation. g is not modified, so calling Compute twice gives the same
// result.
func (e Engine) Compute(g *graph.Graph) GraphMetrics {
	log := e.Logger
	m := GraphMetrics{
		NumNodes:  g.NumNodes(),
		NumEdges:  g.NumEdges(),
		Density:   Density(g),
		AvgDegree: AverageDegree(g),
		Stats:     make(map[string]Stats, 5),
	}

	var dc, bc, cc, ec, cl []float64
	m.fallback(log, MeasureClustering, func() error {
		cl = Clustering(g)
		m.AvgClustering = mean(cl)
		return nil
	})
	m.fallback(log, MeasureComponents, func() error {
		m.NumComponents = Components(g)
		return nil
	})
	m.fallback(log, MeasureDegree, func() error {
		dc = DegreeCentrality(g)
		return nil
	})
	m.fallback(log, MeasureBetweenness, func() error {
		bc = Betweenness(g)
		return nil
	})
	m.fallback(log, MeasureCloseness, func() error {
		cc = Closeness(g)
		return nil
	})
	if g.NumNodes() > 0 {
		m.fallback(log, MeasureEigenvector, func() (err error) {
			ec, err = Eigenvector(g)
			return err
		})
		m.fallback(log, MeasureCommunity, func() error {
			comms, err := Communities(g)
			if err != nil {
				return err
			}
			q, err := Modularity(g, comms)
			if err != nil {
				return err
			}
			m.CommunityCount, m.Modularity = len(comms), q
			m.Communities = make([][]string, len(comms))
			for i, c := range comms {
				m.Communities[i] = make([]string, len(c))
				for j, id := range c {
					m.Communities[i][j] = g.Node(id).ID
				}
			}
			return nil
		})
	}

	m.Centrality = Centrality{
		Degree:      byID(g, dc),
		Betweenness: byID(g, bc),
		Closeness:   byID(g, cc),
		Eigenvector: byID(g, ec),
		Clustering:  byID(g, cl),
	}
	m.Stats[MeasureDegree] = summarize(g, dc)
	m.Stats[MeasureBetweenness] = summarize(g, bc)
	m.Stats[MeasureCloseness] = summarize(g, cc)
	m.Stats[MeasureEigenvector] = summarize(g, ec)
	m.Stats[MeasureClustering] = summarize(g, cl)
	m.Summary = Summarize(g)

	log.V(1).Info("computed graph metrics",
		"granularity", g.Granularity.String(),
		"nodes", m.NumNodes, "edges", m.NumEdges,
		"components", m.NumComponents, "communities", m.CommunityCount)
	return m
}

// fallback runs one measure. On error or panic the failure is logged and
// recorded, and whatever the measure had not yet assigned stays zero.
func (m *GraphMetrics) fallback(log logr.Logger, name string, fn func() error) {
	if err := Try(fn); err != nil {
		log.Error(err, "metric fell back to zero", "metric", name)
		m.Failures = append(m.Failures, name)
	}
}

// Try calls fn and turns a panic into an error wrapping ErrMetricFailure.
func Try(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMetricFailure, r)
		}
	}()
	return fn()
}
