package testutil

import (
	"bytes"

	"github.com/klauspost/compress/gzip"
)

// GzipBytes gzips data, for compressed-fixture tests.
func GzipBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
