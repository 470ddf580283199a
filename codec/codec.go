// Package codec centralizes sample deserialization.
//
// A corpus commits to one decoder: if you change decoders, files prepared
// for the old one will no longer decode. The decoder name is therefore part
// of a corpus's contract, and ByName exists so that callers can select a
// decoder from configuration.
package codec

import "io"

// Decoder decodes one serialized sample into its feature values.
// Implementations must be safe for concurrent use.
type Decoder interface {
	// Decode reads a single serialized sample and returns its values.
	// Every value is expected to fit the corpus value range; Decode does
	// not enforce a range itself.
	Decode(r io.Reader) ([]int32, error)
	Name() string
}

// ByName returns a built-in decoder by its stable name.
func ByName(name string) (Decoder, bool) {
	switch name {
	case "pickle":
		return Pickle{}, true
	case "raw":
		return Raw{}, true
	default:
		return nil, false
	}
}

// Default is the decoder used when none is configured.
//
// Pickle matches the common preparation pipeline where per-file byte
// sequences are serialized with Python's pickle module.
var Default Decoder = Pickle{}
