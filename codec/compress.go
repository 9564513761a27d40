package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/clademark/phyloforest/forest"
)

// WriteCompressed writes f to w framed through a zstd encoder, for
// archiving forests too large to store uncompressed. The wire shape
// inside the compressed frame is identical to Write's.
func WriteCompressed(w io.Writer, f *forest.Forest) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := Write(enc, f); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadCompressed restores a forest written by WriteCompressed.
func ReadCompressed(r io.Reader) (*forest.Forest, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return Read(dec)
}
