package cachestore

import (
	"fmt"
	"math"
	"time"

	pr "github.com/unkn0wn-root/cachestore/provider"
)

// TTL is a write expiry in whole seconds. The zero TTL is "unspecified";
// Seconds(0) means "never expires".
type TTL struct {
	secs int64
	set  bool
}

// MaxTTLSeconds is the longest TTL a write accepts; longer ones do not fit a time.Duration.
const MaxTTLSeconds = math.MaxInt64 / int64(time.Second)

// Forever stores without expiry.
var Forever = Seconds(0)

// Seconds returns a TTL of n seconds. Negative values are rejected at write time.
func Seconds(n int64) TTL { return TTL{secs: n, set: true} }

// TTLOf converts d to whole seconds, rounding a sub-second remainder up so a
// positive duration never collapses into Forever.
func TTLOf(d time.Duration) TTL {
	secs := int64(d / time.Second)
	if d > 0 && d%time.Second != 0 {
		secs++
	}
	return Seconds(secs)
}

// IsSet reports whether the TTL was specified.
func (t TTL) IsSet() bool { return t.set }

// Secs returns the TTL in seconds; 0 when unset.
func (t TTL) Secs() int64 { return t.secs }

func (t TTL) String() string {
	switch {
	case !t.set:
		return "unset"
	case t.secs == 0:
		return "forever"
	}
	return fmt.Sprintf("%ds", t.secs)
}

// SetOptions is the structured form of a write's options.
type SetOptions struct {
	TTL TTL
}

// TTLOption is accepted by every write. An explicit TTL argument outranks a
// SetOptions value; both outrank Options.DefaultTTL.
type TTLOption interface {
	ttlSource() (ttl TTL, explicit bool)
}

func (t TTL) ttlSource() (TTL, bool)        { return t, true }
func (o SetOptions) ttlSource() (TTL, bool) { return o.TTL, false }

// normalizeTTL picks the effective TTL and maps it to a provider directive.
func normalizeTTL(def TTL, opts []TTLOption) (pr.Expiry, error) {
	ttl := pickTTL(def, opts)
	if !ttl.set {
		return pr.Expiry{Kind: pr.ExpiryDefault}, nil
	}
	switch {
	case ttl.secs < 0, ttl.secs > MaxTTLSeconds:
		return pr.Expiry{}, fmt.Errorf("%w: %d", ErrInvalidTTL, ttl.secs)
	case ttl.secs == 0:
		return pr.Persist(), nil
	}
	return pr.After(time.Duration(ttl.secs) * time.Second), nil
}

func pickTTL(def TTL, opts []TTLOption) TTL {
	var structured TTL
	for _, o := range opts {
		if o == nil {
			continue
		}
		t, explicit := o.ttlSource()
		if !t.set {
			continue
		}
		if explicit {
			return t
		}
		if !structured.set {
			structured = t
		}
	}
	if structured.set {
		return structured
	}
	return def
}
