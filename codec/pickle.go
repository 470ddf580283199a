package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
)

// Pickle decodes samples serialized with Python's pickle module.
//
// The pickled object must be a flat numeric sequence: a list or tuple of
// integers (or round floats), or a bytes object. Nested structures and
// non-numeric elements are rejected.
type Pickle struct{}

// Decode unpickles a single sample.
func (Pickle) Decode(r io.Reader) ([]int32, error) {
	u := pickle.NewUnpickler(r)

	obj, err := u.Load()
	if err != nil {
		return nil, fmt.Errorf("unpickle: %w", err)
	}

	return sequenceToInt32(obj)
}

// Name returns the unique name of the decoder ("pickle").
func (Pickle) Name() string { return "pickle" }

func sequenceToInt32(obj any) ([]int32, error) {
	switch seq := obj.(type) {
	case *types.List:
		out := make([]int32, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			v, err := scalarToInt32(seq.Get(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case *types.Tuple:
		out := make([]int32, seq.Len())
		for i := 0; i < seq.Len(); i++ {
			v, err := scalarToInt32(seq.Get(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case []any:
		out := make([]int32, len(seq))
		for i, e := range seq {
			v, err := scalarToInt32(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case []byte:
		out := make([]int32, len(seq))
		for i, b := range seq {
			out[i] = int32(b)
		}
		return out, nil
	case string:
		out := make([]int32, len(seq))
		for i := 0; i < len(seq); i++ {
			out[i] = int32(seq[i])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("pickled object is %T, want a numeric sequence", obj)
	}
}

func scalarToInt32(v any) (int32, error) {
	switch n := v.(type) {
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d overflows int32", n)
		}
		return int32(n), nil
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %d overflows int32", n)
		}
		return int32(n), nil
	case uint8:
		return int32(n), nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("value %v is not representable as int32", n)
		}
		return int32(n), nil
	case float32:
		return scalarToInt32(float64(n))
	default:
		return 0, fmt.Errorf("value is %T, want an integer", v)
	}
}
