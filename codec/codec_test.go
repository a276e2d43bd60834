package codec

import (
	"encoding/json"
	"errors"
	"testing"
)

// sameJSON compares two values by their JSON form, which hides codec-specific
// number widths (int8 vs uint64 vs float64).
func sameJSON(t *testing.T, want, got any) {
	t.Helper()
	wb, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	gb, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	if string(wb) != string(gb) {
		t.Fatalf("value mismatch:\n got  %s\n want %s", gb, wb)
	}
}

func jsonShapedValues() []any {
	return []any{
		"plain",
		"undefined",
		"",
		true,
		false,
		float64(42),
		1.5,
		[]any{"a", float64(1), true},
		map[string]any{
			"name":  "Ada",
			"tags":  []any{"x", "y"},
			"inner": map[string]any{"n": float64(3)},
		},
	}
}

func TestCodecsRoundTripJSONShapedValues(t *testing.T) {
	codecs := map[string]Codec[any]{
		"json":     JSON[any]{},
		"msgpack":  Msgpack[any]{},
		"cbor":     MustCBOR[any](false),
		"cbor-det": MustCBOR[any](true),
		"structpb": StructPB{},
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, v := range jsonShapedValues() {
				b, err := c.Encode(v)
				if err != nil {
					t.Fatalf("Encode(%v): %v", v, err)
				}
				got, err := c.Decode(b)
				if err != nil {
					t.Fatalf("Decode(%v): %v", v, err)
				}
				sameJSON(t, v, got)
			}
		})
	}
}

func TestCBORDecodesStringKeyedMaps(t *testing.T) {
	c := MustCBOR[any](false)
	b, err := c.Encode(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := got.(map[string]any); !ok {
		t.Fatalf("expected map[string]any, got %T", got)
	}
}

func TestStructPBRejectsStructs(t *testing.T) {
	type user struct{ Name string }
	if _, err := (StructPB{}).Encode(user{Name: "x"}); err == nil {
		t.Fatalf("expected error for struct value")
	}
}

func TestJSONTypedStruct(t *testing.T) {
	type user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	c := JSON[user]{}
	b, err := c.Encode(user{ID: "1", Name: "Ada"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil || got.Name != "Ada" || got.ID != "1" {
		t.Fatalf("Decode: got=%+v err=%v", got, err)
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[any]{Inner: JSON[any]{}, MaxEncode: 8, MaxDecode: 8}

	if _, err := c.Encode("short"); err != nil {
		t.Fatalf("Encode within limit: %v", err)
	}
	if _, err := c.Encode("this string is too long"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge on encode, got %v", err)
	}
	if _, err := c.Decode([]byte(`"this is too long"`)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge on decode, got %v", err)
	}
	got, err := c.Decode([]byte(`"ok"`))
	if err != nil || got != "ok" {
		t.Fatalf("Decode within limit: got=%v err=%v", got, err)
	}

	unlimited := LimitCodec[any]{Inner: JSON[any]{}}
	if _, err := unlimited.Encode("this string is too long"); err != nil {
		t.Fatalf("zero limits must disable checks: %v", err)
	}
}

func TestCBORZeroValueUsable(t *testing.T) {
	var c CBOR[any]
	b, err := c.Encode(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sameJSON(t, map[string]any{"k": "v"}, got)
}

func TestMsgpackUsesJSONTagsAndWideNumbers(t *testing.T) {
	type user struct {
		ID  string `json:"id"`
		Age int    `json:"age"`
	}
	b, err := Msgpack[user]{}.Encode(user{ID: "7", Age: 30})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Msgpack[any]{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", got)
	}
	if m["id"] != "7" {
		t.Fatalf("json tag not honoured: %v", m)
	}
	switch m["age"].(type) {
	case int64, uint64:
	default:
		t.Fatalf("expected a 64-bit integer age, got %T", m["age"])
	}
}
