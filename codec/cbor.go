package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR stores values as RFC 8949 CBOR. The zero value uses the shared preferred
// (unsorted) modes; NewCBOR(true) switches to Core Deterministic encoding for
// byte-stable output. Times encode as RFC3339Nano strings and maps decoded into
// `any` come back as map[string]any, so results look like the JSON codec's.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[any] = CBOR[any]{}

var defaultCBOREnc, defaultCBORDec = mustModes(false)

func cborModes(deterministic bool) (cbor.EncMode, cbor.DecMode, error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano
	em, err := eo.EncMode()
	if err != nil {
		return nil, nil, err
	}
	dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		return nil, nil, err
	}
	return em, dm, nil
}

func mustModes(deterministic bool) (cbor.EncMode, cbor.DecMode) {
	em, dm, err := cborModes(deterministic)
	if err != nil {
		panic(err)
	}
	return em, dm
}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	em, dm, err := cborModes(deterministic)
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is NewCBOR for package-level vars and tests.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) {
	if c.enc == nil {
		return defaultCBOREnc.Marshal(v)
	}
	return c.enc.Marshal(v)
}

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	dm := c.dec
	if dm == nil {
		dm = defaultCBORDec
	}
	err := dm.Unmarshal(b, &v)
	return v, err
}
