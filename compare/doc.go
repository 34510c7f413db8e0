// Package compare relates a toxin variant to its wild-type reference.
//
// Sequences are aligned globally with Needleman-Wunsch and BLOSUM62. The
// alignment pairs up residues, which gives both a percent identity and the
// alpha-carbon pairs used for RMSD. Graph metrics and per-residue segments
// are compared as simple differences, and IC50 measurements are normalized
// to nanomolar so that variants can be ranked by potency.
package compare
