package wire

import (
	"bytes"
	"errors"
)

const (
	version       byte = 1
	kindValue     byte = 1
	kindUndefined byte = 2

	hdrLen = 4 + 1 + 1
)

var (
	ErrCorrupt = errors.New("cachestore: corrupt entry")
	magic4     = [...]byte{'C', 'S', 'T', 'R'}
)

// Kind tells what a decoded frame carries.
type Kind byte

const (
	Value     Kind = Kind(kindValue)
	Undefined Kind = Kind(kindUndefined)
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

func header(kind byte, extra int) *bytes.Buffer {
	var buf bytes.Buffer
	buf.Grow(hdrLen + extra)
	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kind)
	return &buf
}

// Value: magic(4) | ver(1) | kind(1=value) | payload(rest)
func EncodeValue(payload []byte) []byte {
	buf := header(kindValue, len(payload))
	buf.Write(payload)
	return buf.Bytes()
}

// Undefined: magic(4) | ver(1) | kind(2=undefined), no payload.
func EncodeUndefined() []byte {
	return header(kindUndefined, 0).Bytes()
}

// Decode validates the frame header and returns the kind and payload.
// The payload aliases b.
func Decode(b []byte) (Kind, []byte, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	switch b[5] {
	case kindValue:
		return Value, b[hdrLen:], nil
	case kindUndefined:
		if len(b) != hdrLen {
			return 0, nil, ErrCorrupt
		}
		return Undefined, nil, nil
	default:
		return 0, nil, ErrCorrupt
	}
}
