package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// StructPB encodes JSON-shaped values as a protobuf google.protobuf.Value.
// Only nil, bool, numbers, string, []byte, []any and map[string]any are accepted;
// Go structs must go through JSON, Msgpack or CBOR instead. Numbers decode as float64.
type StructPB struct{}

var _ Codec[any] = StructPB{}

func (StructPB) Encode(v any) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (StructPB) Decode(b []byte) (any, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(b, &pv); err != nil {
		return nil, err
	}
	return pv.AsInterface(), nil
}
