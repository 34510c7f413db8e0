/*
Package graph builds typed interaction graphs from protein structures.

A graph has one node per residue (anchored at the residue's alpha-carbon) or
one node per atom of every standard residue, depending on its Granularity.
Edges come in three kinds, added in this order:

	distance   any two nodes within Options.DistanceThreshold of each other
	peptide    sequentially adjacent residues of one chain (residue graphs)
	disulfide  cysteine SG atoms closer than Options.DisulfideCutoff

When the same pair of nodes is connected twice, the more specific type wins
(disulfide, then peptide, then distance).

Graphs are never modified after Build returns. Everything that reads them
(metrics, motifs, dipoles, segments) does so without mutation, so a single
graph may be shared between goroutines.
*/
package graph
