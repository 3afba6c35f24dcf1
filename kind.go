package hxlive

import (
	"encoding/json"
	"hash/crc32"
	"strconv"
)

// Kind tags the declared type of a component property.
//
// The kind decides the zero value a new instance starts with. Whether a
// property takes part in dirty checking is decided by its current value, not
// its kind: a KindNull property holding a string is diffed like any string.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
	KindCallback
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindList:     "list",
	KindMap:      "map",
	KindCallback: "callback",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind converts a kind name (as used in live struct tags) to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindNull, false
}

// Zero returns the value a freshly created instance holds for this kind.
func (k Kind) Zero() any {
	switch k {
	case KindString:
		return ""
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindBool:
		return false
	case KindList:
		return []any{}
	case KindMap:
		return map[string]any{}
	default:
		return nil
	}
}

// canonical returns the string form a diffable value is hashed over.
// ok is false for values that are never diffed (lists, maps, structs,
// funcs, callbacks and bools).
func canonical(v any) (s string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Diffable reports whether v participates in dirty checking:
// nil, strings and numbers do, everything else is skipped.
func Diffable(v any) bool {
	_, ok := canonical(v)
	return ok
}

// Checksum returns the CRC-32 (IEEE) of the value's canonical form.
// Integers and their decimal strings share a checksum, so 30 and "30" are
// considered equal. ok is false for non-diffable values.
func Checksum(v any) (sum uint32, ok bool) {
	s, ok := canonical(v)
	if !ok {
		return 0, false
	}
	return crc32.ChecksumIEEE([]byte(s)), true
}
