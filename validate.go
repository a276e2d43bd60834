package cachestore

import (
	"fmt"
	"reflect"
)

// CacheableFunc decides whether a value may be written.
type CacheableFunc func(value any) bool

// DefaultCacheable rejects null and Undefined and accepts everything else.
// Typed nil pointers, maps, slices and interfaces count as null, because they
// serialize to null.
func DefaultCacheable(v any) bool {
	return !isNull(v) && !IsUndefined(v)
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// describe renders v for NotCacheableError.
func describe(v any) string {
	switch {
	case IsUndefined(v):
		return "undefined"
	case isNull(v):
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
