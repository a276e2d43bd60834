package util

import (
	"reflect"
	"testing"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, key string
		want         bool
	}{
		{"*", "", true},
		{"*", "anything/with/slashes", true},
		{"user:*", "user:1", true},
		{"user:*", "order:1", false},
		{"h?llo", "hello", true},
		{"h?llo", "hllo", false},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hillo", false},
		{"h[^e]llo", "hallo", true},
		{"h[^e]llo", "hello", false},
		{"h[a-b]llo", "hbllo", true},
		{"h[a-b]llo", "hcllo", false},
		{`h\*llo`, "h*llo", true},
		{`h\*llo`, "hallo", false},
		{"a*b*c", "axxbyyc", true},
		{"a*b*c", "axxbyy", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}
	for _, tc := range cases {
		if got := Match(tc.pattern, tc.key); got != tc.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tc.pattern, tc.key, got, tc.want)
		}
	}
}

func TestPatternEscapesPrefix(t *testing.T) {
	p := Pattern("app[1]:", "")
	if p != `app\[1\]:*` {
		t.Fatalf("Pattern = %q", p)
	}
	if !Match(p, "app[1]:k") {
		t.Fatalf("escaped prefix should match itself")
	}
	if Match(p, "app1:k") {
		t.Fatalf("escaped prefix should not act as a class")
	}
	if got := Pattern("", ""); got != MatchAll {
		t.Fatalf("empty pattern should select all, got %q", got)
	}
}

func TestNamespacedAndStrip(t *testing.T) {
	keys := NamespacedAll("ns:", []string{"a", "b"})
	if !reflect.DeepEqual(keys, []string{"ns:a", "ns:b"}) {
		t.Fatalf("NamespacedAll = %v", keys)
	}
	got := StripAll("ns:", []string{"ns:a", "other:b", "ns:c"})
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("StripAll = %v", got)
	}
	if Namespaced("", "k") != "k" {
		t.Fatalf("empty prefix must not alter key")
	}
}
