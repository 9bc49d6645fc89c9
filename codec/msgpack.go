package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/genasset/store"
)

// Msgpack is a Codec that serializes tuples using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack is compact and fast; the tuple's `msgpack` struct tags keep the
// wire field names aligned with the JSON codec.
type Msgpack struct{}

func (Msgpack) Encode(t store.Tuple) ([]byte, error) {
	return msgpack.Marshal(t)
}
func (Msgpack) Decode(b []byte) (store.Tuple, error) {
	var t store.Tuple
	err := msgpack.Unmarshal(b, &t)
	return t, err
}
