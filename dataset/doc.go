// Package dataset maps flat integer indices onto label-partitioned sample
// collections.
//
// A SampleStore enumerates one collection with deterministic lexicographic
// indexing. Union composes a benign and a malware store into a single index
// space where index arithmetic determines the label. Subset is a non-owning
// index view used to carve train/val/test partitions out of a dataset
// without copying anything.
package dataset
