package cachestore

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The store calls them on hot paths.
type Hooks interface {
	// The policy refused a value. op ∈ {"set", "mset"}.
	ValueRejected(op, key string)

	// The provider failed; err is the provider's error, before wrapping.
	StoreError(op string, err error)

	// Stored bytes could not be decoded on read.
	DecodeError(key string, err error)

	// Wrap computed a value but could not cache it (the value was still returned).
	WrapSetFailed(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) ValueRejected(string, string) {}
func (NopHooks) StoreError(string, error)     {}
func (NopHooks) DecodeError(string, error)    {}
func (NopHooks) WrapSetFailed(string, error)  {}
