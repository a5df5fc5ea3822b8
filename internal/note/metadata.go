package note

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MonaAghili/public-notes/internal/markdown"
)

// ValueKind discriminates the representable metadata value types.
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindBool   ValueKind = "bool"
	KindDate   ValueKind = "date"
	KindList   ValueKind = "list"
)

// Value is one metadata entry. Exactly the field matching Kind is
// meaningful; the others stay zero.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	Date time.Time
	List []string
}

// MarshalJSON emits the tagged form {"kind": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind  ValueKind `json:"kind"`
		Value any       `json:"value"`
	}{Kind: v.Kind}

	switch v.Kind {
	case KindString:
		out.Value = v.Str
	case KindNumber:
		out.Value = v.Num
	case KindBool:
		out.Value = v.Bool
	case KindDate:
		out.Value = v.Date
	case KindList:
		out.Value = v.List
	default:
		return nil, fmt.Errorf("metadata value has unknown kind %q", v.Kind)
	}

	return json.Marshal(out)
}

// StringValue builds a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue builds a number Value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// BoolValue builds a bool Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// DateValue builds a date Value.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// ListValue builds a list-of-strings Value.
func ListValue(items []string) Value { return Value{Kind: KindList, List: items} }

// ValueFromAny converts a decoded YAML scalar or list into a Value. The
// second return is false for shapes the bag does not represent (nested
// maps, nil, mixed lists with non-scalar elements).
func ValueFromAny(raw any) (Value, bool) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), true
	case bool:
		return BoolValue(v), true
	case int:
		return NumberValue(float64(v)), true
	case int64:
		return NumberValue(float64(v)), true
	case uint64:
		return NumberValue(float64(v)), true
	case float64:
		return NumberValue(v), true
	case time.Time:
		return DateValue(v), true
	case []string:
		return ListValue(append([]string(nil), v...)), true
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				items = append(items, s)
			case int, int64, uint64, float64, bool:
				items = append(items, fmt.Sprint(s))
			default:
				return Value{}, false
			}
		}
		return ListValue(items), true
	default:
		return Value{}, false
	}
}

// Metadata is a note's front matter: well-known fields pulled out, the rest
// kept as an open tagged-value bag.
type Metadata struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Date        time.Time        `json:"date,omitzero"`
	Tags        []string         `json:"tags,omitempty"`
	Extra       map[string]Value `json:"extra,omitempty"`
}

// MetadataFrom maps decoded front matter into Metadata. Custom entries that
// cannot be represented as a tagged value are dropped.
func MetadataFrom(fm markdown.FrontMatter) Metadata {
	meta := Metadata{
		Title:       fm.Title,
		Description: fm.Description,
		Date:        fm.Date,
	}
	if len(fm.Tags) > 0 {
		meta.Tags = append([]string(nil), fm.Tags...)
	}
	if len(fm.Custom) > 0 {
		meta.Extra = make(map[string]Value, len(fm.Custom))
		for key, raw := range fm.Custom {
			if value, ok := ValueFromAny(raw); ok {
				meta.Extra[key] = value
			}
		}
		if len(meta.Extra) == 0 {
			meta.Extra = nil
		}
	}
	return meta
}
