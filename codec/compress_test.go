package codec

import (
	"bytes"
	"testing"
)

func TestCompressedRoundTrip(t *testing.T) {
	f := buildSample(t)

	var buf bytes.Buffer
	if err := WriteCompressed(&buf, f); err != nil {
		t.Fatalf("WriteCompressed: %v", err)
	}

	got, err := ReadCompressed(&buf)
	if err != nil {
		t.Fatalf("ReadCompressed: %v", err)
	}

	if got.Len() != f.Len() {
		t.Fatalf("expected %d nodes, got %d", f.Len(), got.Len())
	}
}
