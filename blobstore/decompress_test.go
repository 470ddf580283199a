package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestDecompressingStore_Open(t *testing.T) {
	payload := []byte("compressed sample payload")

	var zstdBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zstdBuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var lz4Buf bytes.Buffer
	lw := lz4.NewWriter(&lz4Buf)
	_, err = lw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err = gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	inner := NewMemoryStore()
	inner.Put("a.pkl.zst", zstdBuf.Bytes())
	inner.Put("b.pkl.lz4", lz4Buf.Bytes())
	inner.Put("c.pkl.gz", gzBuf.Bytes())
	inner.Put("d.pkl", payload)

	store := NewDecompressingStore(inner)
	ctx := context.Background()

	for _, name := range []string{"a.pkl.zst", "b.pkl.lz4", "c.pkl.gz", "d.pkl"} {
		t.Run(name, func(t *testing.T) {
			rc, err := store.Open(ctx, name)
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.Equal(t, payload, got)
		})
	}
}

func TestDecompressingStore_ListPassthrough(t *testing.T) {
	inner := NewMemoryStore()
	inner.Put("a.pkl.zst", []byte("x"))

	store := NewDecompressingStore(inner)

	// Names keep their stored extension; sort determinism is based on what
	// is actually stored.
	names, err := store.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a.pkl.zst"}, names)
}

func TestDecompressingStore_CorruptBlob(t *testing.T) {
	inner := NewMemoryStore()
	inner.Put("a.pkl.gz", []byte("definitely not gzip"))

	store := NewDecompressingStore(inner)

	_, err := store.Open(context.Background(), "a.pkl.gz")
	require.Error(t, err)
}
