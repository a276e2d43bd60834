package cachestore

import (
	"errors"
	"fmt"
)

var (
	ErrNotCacheable  = errors.New("cachestore: value is not cacheable")
	ErrConnection    = errors.New("cachestore: store connection failure")
	ErrSerialization = errors.New("cachestore: serialization failure")
	ErrInvalidTTL    = errors.New("cachestore: invalid ttl")
	ErrNoProvider    = errors.New("cachestore: provider is required")
)

// NotCacheableError is returned, before any store command, when the policy rejects a value.
type NotCacheableError struct {
	Key   string
	Value string // string form of the rejected value
}

func (e *NotCacheableError) Error() string {
	return fmt.Sprintf("cachestore: %q is not a cacheable value (key %q)", e.Value, e.Key)
}

func (e *NotCacheableError) Is(target error) bool { return target == ErrNotCacheable }

// ConnectionError wraps any failure of the underlying store client.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cachestore: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }
func (e *ConnectionError) Unwrap() error        { return e.Err }

// SerializationError wraps a codec or wire-format failure.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("cachestore: serialize %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }
func (e *SerializationError) Unwrap() error        { return e.Err }
