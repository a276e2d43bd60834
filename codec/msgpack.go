package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack stores values as MessagePack. It reads `json` struct tags, so a type
// cached with JSON keeps its field names here too, and decodes numbers into
// `any` as int64/uint64/float64 rather than the narrowest wire width.
type Msgpack[V any] struct{}

var _ Codec[any] = Msgpack[any]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	dec.UseLooseInterfaceDecoding(true)
	err := dec.Decode(&v)
	return v, err
}
