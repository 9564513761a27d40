package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// encodeRecord serializes a record as parent followed by a length-prefixed
// children list, the same tagged-field shape package codec uses for its
// own records but scoped to a single key's value rather than a whole
// stream.
func encodeRecord(rec record) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.BigEndian, rec.Parent); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(len(rec.Children))); err != nil {
		return nil, err
	}
	for _, c := range rec.Children {
		if err := binary.Write(buf, binary.BigEndian, c); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeRecord(val []byte) (record, error) {
	r := bytes.NewReader(val)
	var rec record
	if err := binary.Read(r, binary.BigEndian, &rec.Parent); err != nil {
		return rec, fmt.Errorf("storage: decode record: %w", err)
	}
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return rec, fmt.Errorf("storage: decode record: %w", err)
	}
	rec.Children = make([]int64, n)
	for i := range rec.Children {
		if err := binary.Read(r, binary.BigEndian, &rec.Children[i]); err != nil {
			return rec, fmt.Errorf("storage: decode record: %w", err)
		}
	}
	return rec, nil
}
