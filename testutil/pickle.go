package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// PickleInts serializes a flat integer list the way Python's
// pickle.dump(list_of_ints, f, protocol=2) would, using only the standard
// integer opcodes. Good enough to produce fixtures for any compliant
// unpickler; not a general pickler.
func PickleInts(values []int32) []byte {
	var buf bytes.Buffer

	buf.Write([]byte{0x80, 0x02}) // PROTO 2
	buf.WriteByte(']')            // EMPTY_LIST

	if len(values) > 0 {
		buf.WriteByte('(') // MARK
		for _, v := range values {
			switch {
			case v >= 0 && v < 1<<8:
				buf.WriteByte('K') // BININT1
				buf.WriteByte(byte(v))
			case v >= 0 && v < 1<<16:
				buf.WriteByte('M') // BININT2
				var u [2]byte
				binary.LittleEndian.PutUint16(u[:], uint16(v))
				buf.Write(u[:])
			default:
				buf.WriteByte('J') // BININT
				var u [4]byte
				binary.LittleEndian.PutUint32(u[:], uint32(v))
				buf.Write(u[:])
			}
		}
		buf.WriteByte('e') // APPENDS
	}

	buf.WriteByte('.') // STOP

	return buf.Bytes()
}

// WriteSampleDir writes the given samples as pickle files into dir, one
// file per sample, with zero-padded names so that lexicographic order
// equals slice order. It returns the file names.
func WriteSampleDir(dir string, samples [][]int32) ([]string, error) {
	names := make([]string, 0, len(samples))

	for i, sample := range samples {
		name := fmt.Sprintf("sample-%04d.pkl", i)
		if err := os.WriteFile(filepath.Join(dir, name), PickleInts(sample), 0o644); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, nil
}

// RandomSampleDir fills dir with count random pickled samples whose
// lengths fall in [minLen, maxLen].
func RandomSampleDir(dir string, count, minLen, maxLen int, rng *RNG) ([]string, error) {
	samples := make([][]int32, count)
	for i := range samples {
		length := minLen
		if maxLen > minLen {
			length += rng.Intn(maxLen - minLen + 1)
		}
		samples[i] = rng.Sample(length)
	}
	return WriteSampleDir(dir, samples)
}
