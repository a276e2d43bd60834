package cachestore

import (
	c "github.com/unkn0wn-root/cachestore/codec"
	"github.com/unkn0wn-root/cachestore/internal/wire"
)

// Serializer frames codec payloads for the store. Undefined gets its own frame
// kind, so no encoded value can be mistaken for it.
type Serializer struct {
	codec c.Codec[any]
}

// NewSerializer returns a Serializer over codec; nil selects JSON.
func NewSerializer(codec c.Codec[any]) Serializer {
	if codec == nil {
		codec = c.JSON[any]{}
	}
	return Serializer{codec: codec}
}

// Encode returns the stored form of v.
func (s Serializer) Encode(v any) ([]byte, error) {
	if IsUndefined(v) {
		return wire.EncodeUndefined(), nil
	}
	payload, err := s.codec.Encode(v)
	if err != nil {
		return nil, err
	}
	return wire.EncodeValue(payload), nil
}

// Decode turns stored bytes back into a Result. nil means the store had no entry.
func (s Serializer) Decode(raw []byte) (Result, error) {
	if raw == nil {
		return Result{Kind: Miss}, nil
	}
	kind, payload, err := wire.Decode(raw)
	if err != nil {
		return Result{}, err
	}
	if kind == wire.Undefined {
		return Result{Kind: HitUndefined, Value: Undefined}, nil
	}
	v, err := s.codec.Decode(payload)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: Hit, Value: v}, nil
}
