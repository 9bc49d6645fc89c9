package codec

import (
	"encoding/json"

	"github.com/unkn0wn-root/genasset/store"
)

type JSONCodec struct{}

func (JSONCodec) Encode(t store.Tuple) ([]byte, error) { return json.Marshal(t) }
func (JSONCodec) Decode(b []byte) (store.Tuple, error) {
	var t store.Tuple
	err := json.Unmarshal(b, &t)
	return t, err
}
