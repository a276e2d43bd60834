package util

import "strings"

// MatchAll is the glob that selects every key.
const MatchAll = "*"

// Namespaced prefixes key with prefix. An empty prefix leaves key untouched.
func Namespaced(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + key
}

// NamespacedAll applies Namespaced to every key and returns a new slice.
func NamespacedAll(prefix string, keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Namespaced(prefix, k)
	}
	return out
}

// StripAll removes prefix from each key in place. Keys without the prefix are dropped.
func StripAll(prefix string, keys []string) []string {
	if prefix == "" {
		return keys
	}
	out := keys[:0]
	for _, k := range keys {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			out = append(out, rest)
		}
	}
	return out
}

// Pattern scopes a user glob to prefix. Glob metacharacters inside prefix are
// escaped so the prefix only ever matches itself.
func Pattern(prefix, pattern string) string {
	if pattern == "" {
		pattern = MatchAll
	}
	if prefix == "" {
		return pattern
	}
	return EscapeGlob(prefix) + pattern
}

// EscapeGlob backslash-escapes *, ?, [, ] and \ in s.
func EscapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Match reports whether key matches a Redis-style glob:
// * (any run), ? (one byte), [abc], [^abc], [a-z] and \x escapes.
// Unlike path.Match, '/' is an ordinary byte.
func Match(pattern, key string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(key); i++ {
				if Match(pattern, key[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(key) == 0 {
				return false
			}
			pattern, key = pattern[1:], key[1:]
		case '[':
			if len(key) == 0 {
				return false
			}
			rest, ok := matchClass(pattern[1:], key[0])
			if !ok {
				return false
			}
			pattern, key = rest, key[1:]
		case '\\':
			if len(pattern) >= 2 {
				pattern = pattern[1:]
			}
			fallthrough
		default:
			if len(key) == 0 || pattern[0] != key[0] {
				return false
			}
			pattern, key = pattern[1:], key[1:]
		}
	}
	return len(key) == 0
}

// matchClass consumes a [...] class body (after '[') and reports whether c is in it.
func matchClass(p string, c byte) (string, bool) {
	negate := false
	if len(p) > 0 && p[0] == '^' {
		negate = true
		p = p[1:]
	}
	matched := false
	for len(p) > 0 && p[0] != ']' {
		lo := p[0]
		if lo == '\\' && len(p) >= 2 {
			p = p[1:]
			lo = p[0]
		}
		p = p[1:]
		hi := lo
		if len(p) >= 2 && p[0] == '-' && p[1] != ']' {
			hi = p[1]
			if hi == '\\' && len(p) >= 3 {
				hi = p[2]
				p = p[1:]
			}
			p = p[2:]
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= c && c <= hi {
			matched = true
		}
	}
	if len(p) > 0 {
		p = p[1:] // closing ]
	}
	return p, matched != negate
}
