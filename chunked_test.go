// SPDX-License-Identifier: MIT

package ddelta

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestChunkedRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	old := make([]byte, 10000)
	rng.Read(old)

	new := make([]byte, 0, len(old)+50)
	new = append(new, old[:4000]...)
	insertion := make([]byte, 50)
	rng.Read(insertion)
	new = append(new, insertion...)
	new = append(new, old[4000:]...)

	opts := &ChunkOptions{ChunkSize: minChunkSize}

	var patch bytes.Buffer
	if err := GenerateChunked(bytes.NewReader(old), bytes.NewReader(new), &patch, opts, nil); err != nil {
		t.Fatalf("GenerateChunked: %v", err)
	}

	var out bytes.Buffer
	if err := ApplyChunked(bytes.NewReader(patch.Bytes()), bytes.NewReader(old), &out); err != nil {
		t.Fatalf("ApplyChunked: %v", err)
	}

	if !bytes.Equal(out.Bytes(), new) {
		t.Fatalf("chunked round trip mismatch: got %d bytes, want %d bytes", out.Len(), len(new))
	}
}

func TestChunkedEmptyNew(t *testing.T) {
	opts := &ChunkOptions{ChunkSize: minChunkSize}

	var patch bytes.Buffer
	if err := GenerateChunked(bytes.NewReader(nil), bytes.NewReader(nil), &patch, opts, nil); err != nil {
		t.Fatalf("GenerateChunked: %v", err)
	}

	var out bytes.Buffer
	if err := ApplyChunked(bytes.NewReader(patch.Bytes()), bytes.NewReader(nil), &out); err != nil {
		t.Fatalf("ApplyChunked: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty output, got %d bytes", out.Len())
	}
}

func TestChunkOptionsResolve(t *testing.T) {
	cases := []struct {
		opts *ChunkOptions
		want int
	}{
		{nil, maxChunkSize},
		{DefaultChunkOptions(), maxChunkSize},
		{&ChunkOptions{ChunkSize: 0}, maxChunkSize},
		{&ChunkOptions{ChunkSize: 1}, minChunkSize},
		{&ChunkOptions{ChunkSize: minChunkSize}, minChunkSize},
		{&ChunkOptions{ChunkSize: maxChunkSize + 1000}, maxChunkSize},
		{&ChunkOptions{ChunkSize: 5000}, 5000},
	}

	for _, c := range cases {
		if got := c.opts.resolve(); got != c.want {
			t.Errorf("resolve() = %d, want %d", got, c.want)
		}
	}
}

func TestChunkedProgressReporting(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	old := make([]byte, 5000)
	rng.Read(old)
	new := make([]byte, 5000)
	rng.Read(new)

	var kinds []ProgressKind
	progress := func(s ProgressState) { kinds = append(kinds, s.Kind) }

	opts := &ChunkOptions{ChunkSize: minChunkSize}
	var patch bytes.Buffer
	if err := GenerateChunked(bytes.NewReader(old), bytes.NewReader(new), &patch, opts, progress); err != nil {
		t.Fatalf("GenerateChunked: %v", err)
	}

	var sawReading, sawSorting bool
	for _, k := range kinds {
		switch k {
		case ProgressReading:
			sawReading = true
		case ProgressSorting:
			sawSorting = true
		}
	}
	if !sawReading {
		t.Error("expected at least one ProgressReading report")
	}
	if !sawSorting {
		t.Error("expected at least one ProgressSorting report")
	}
}
