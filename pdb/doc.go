/*
Package pdb reads the coordinate section of PDB files into a chain, residue
and atom hierarchy suitable for building structure graphs.

Only ATOM, HETATM, MODEL/ENDMDL, HELIX, SHEET and HEADER records are
interpreted. Everything else is skipped. When a file contains more than one
model, only the first is kept, and when an atom has alternate locations only
the first one seen is kept.

Residue names are normalized as they are read (see amino.Normalize), so that
force field names like HSD or CYX become HIS and CYS. The name found in the
file is preserved in Residue.Original.

Partial charges are not part of the PDB format. They are filled in by the psf
package when a matching PSF file is available.
*/
package pdb
