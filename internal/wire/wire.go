// Package wire frames cache entries so foreign or truncated values in a
// shared cache are detected before the codec ever sees them. Framing is
// strict: anything that is not exactly one well-formed entry is ErrCorrupt
// and gets self-healed (deleted) by the caller.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version   byte = 1
	kindTuple byte = 1
)

var (
	ErrCorrupt = errors.New("genasset: corrupt cache entry")
	magic4     = [...]byte{'G', 'E', 'N', 'A'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | kind(1=tuple) | vlen(u32 be) | payload(vlen)
func Encode(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindTuple)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func Decode(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != kindTuple {
		return nil, ErrCorrupt
	}

	off := 6

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // overflow-safe; trailing bytes are corruption
		return nil, ErrCorrupt
	}

	return b[off : off+vlen], nil
}
