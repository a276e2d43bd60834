package cachestore

// Kind tags a read result.
type Kind uint8

const (
	// Miss means the key is absent.
	Miss Kind = iota
	// Hit means a value was stored and decoded.
	Hit
	// HitUndefined means the Undefined sentinel was stored under the key.
	HitUndefined
)

func (k Kind) String() string {
	switch k {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case HitUndefined:
		return "hit_undefined"
	default:
		return "unknown"
	}
}

// Result is the outcome of a read. Value is nil for Miss and Undefined for HitUndefined.
type Result struct {
	Kind  Kind
	Value any
}

// Found reports whether the key held an entry (including the Undefined sentinel).
func (r Result) Found() bool { return r.Kind != Miss }

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the sentinel for "a value that has no serialized form". It is
// distinct from nil (null) and from a miss. The default policy refuses to store it.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}
