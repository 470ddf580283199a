package dataset

import "fmt"

// IndexError indicates a genuinely out-of-range index access.
//
// It is never used internally to select between label partitions; that
// dispatch is an explicit bounds comparison.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// DataError indicates that a sample file was missing, unreadable or could
// not be decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type DataError struct {
	Name  string
	cause error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("sample %q: %v", e.Name, e.cause)
}

func (e *DataError) Unwrap() error { return e.cause }
