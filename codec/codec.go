// Package codec holds the payload encoders the store frames inside its wire format.
//
// The store works with Codec[any]: values are JSON-shaped (nil, bool, numbers,
// strings, []any, map[string]any) or structs the chosen codec understands.
// Numbers come back in the codec's native shape (float64 for JSON, int64/uint64
// for CBOR and MessagePack), so compare decoded values accordingly.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
