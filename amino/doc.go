/*
Package amino holds the static amino acid reference tables used throughout
toxgraph: three letter to one letter codes, the mapping of force field and
modified residue names back to their canonical residue, the Kyte-Doolittle
hydrophobicity scale, a coarse per-residue charge and a physicochemical
classification.

All tables are read-only package data. Nothing in this package allocates
per call beyond the returned values.
*/
package amino
