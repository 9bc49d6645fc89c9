package codec

import "github.com/unkn0wn-root/genasset/store"

// Codec encodes/decodes artifact tuples to []byte for cache storage.
type Codec interface {
	Encode(store.Tuple) ([]byte, error)
	Decode([]byte) (store.Tuple, error)
}
