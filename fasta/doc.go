/*
Package fasta reads and writes protein sequences in FASTA format.

Reference sequences of wild-type toxins are read with Reader. Sequences
extracted from structures, and pairwise alignments between a variant and its
reference, are written with Writer and AlignedWriter.

Sequence lines may only contain letters, '*' and '-'. Lower case letters are
translated to upper case.
*/
package fasta
