package codec

import (
	"fmt"

	"github.com/unkn0wn-root/genasset/store"
)

// LimitCodec wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: protect against oversized/malicious inputs coming from a
// shared cache or untrusted source.
type LimitCodec struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. If payload length exceeds MaxDecode, Decode returns
	// an error without invoking Inner.
	MaxDecode int
}

func (c LimitCodec) Encode(t store.Tuple) ([]byte, error) { return c.Inner.Encode(t) }
func (c LimitCodec) Decode(b []byte) (store.Tuple, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return store.Tuple{}, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
