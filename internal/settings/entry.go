package settings

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/agentx-labs/guisettings/internal/pairlist"
	"github.com/spf13/cast"
)

// Entry identifies one setting by group, key name and default value.
// Entries are declared once by the caller and never mutated.
type Entry struct {
	Group   string
	Name    string
	Default any
}

// Path returns the "group/name" key path of the entry.
func (e Entry) Path() string {
	return joinPath(e.Group, e.Name)
}

const (
	byteArrayPrefix = "@ByteArray("
	byteArraySuffix = ")"
)

// Value is a stored setting together with the default to fall back on.
// Every accessor returns the default when the key is absent or the stored
// text does not convert to the requested type.
type Value struct {
	raw string
	set bool
	def any
}

// IsSet reports whether the value came from the store rather than the default.
func (v Value) IsSet() bool { return v.set }

// Raw returns the stored text exactly as it appears in the file, or ""
// when unset.
func (v Value) Raw() string { return v.raw }

// Default returns the fallback value.
func (v Value) Default() any { return v.def }

// String returns the value as text. Byte arrays decode to their contents.
func (v Value) String() string {
	if !v.set {
		return defaultString(v.def)
	}
	if b, ok := decodeByteArray(v.raw); ok {
		return string(b)
	}
	return unescapeString(v.raw)
}

// Bool returns the value as a boolean.
func (v Value) Bool() bool {
	if v.set {
		if b, err := cast.ToBoolE(v.raw); err == nil {
			return b
		}
	}
	return cast.ToBool(v.def)
}

// Int returns the value as a signed integer.
func (v Value) Int() int {
	if v.set {
		if n, err := strconv.ParseInt(strings.TrimSpace(v.raw), 10, 0); err == nil {
			return int(n)
		}
	}
	return cast.ToInt(v.def)
}

// Uint returns the value as an unsigned integer.
func (v Value) Uint() uint {
	if v.set {
		if n, err := strconv.ParseUint(strings.TrimSpace(v.raw), 10, 0); err == nil {
			return uint(n)
		}
	}
	return cast.ToUint(v.def)
}

// Float returns the value as a float64.
func (v Value) Float() float64 {
	if v.set {
		if f, err := cast.ToFloat64E(strings.TrimSpace(v.raw)); err == nil {
			return f
		}
	}
	return cast.ToFloat64(v.def)
}

// Bytes returns a byte-array value.
func (v Value) Bytes() []byte {
	if v.set {
		if b, ok := decodeByteArray(v.raw); ok {
			return b
		}
	}
	if b, ok := v.def.([]byte); ok {
		return b
	}
	return nil
}

// Pairs returns a pair-list value. A malformed blob reads as an empty list.
func (v Value) Pairs() pairlist.List {
	if v.set {
		b, ok := decodeByteArray(v.raw)
		if !ok {
			return nil
		}
		l, err := pairlist.Decode(b)
		if err != nil {
			return nil
		}
		return l
	}
	if l, ok := v.def.(pairlist.List); ok {
		return l
	}
	return nil
}

// formatValue renders v in the on-disk text form.
func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return escapeString(x), nil
	case []byte:
		return encodeByteArray(x), nil
	case pairlist.List:
		blob, err := pairlist.Encode(x)
		if err != nil {
			return "", err
		}
		return encodeByteArray(blob), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}
	// Named integer types (enumerations) are stored by number even when
	// they implement fmt.Stringer.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.String:
		return escapeString(rv.String()), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("unsupported setting type %T", v)
	}
	return escapeString(s), nil
}

func defaultString(def any) string {
	switch x := def.(type) {
	case []byte:
		return string(x)
	case pairlist.List:
		return ""
	}
	return cast.ToString(def)
}

// Strings that begin with '@' are stored with a doubled '@' so they can't
// be mistaken for an encoded value.
func escapeString(s string) string {
	if strings.HasPrefix(s, "@") {
		return "@" + s
	}
	return s
}

func unescapeString(s string) string {
	if strings.HasPrefix(s, "@@") {
		return s[1:]
	}
	return s
}

func encodeByteArray(b []byte) string {
	return byteArrayPrefix + base64.StdEncoding.EncodeToString(b) + byteArraySuffix
}

func decodeByteArray(s string) ([]byte, bool) {
	if !strings.HasPrefix(s, byteArrayPrefix) || !strings.HasSuffix(s, byteArraySuffix) {
		return nil, false
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, byteArrayPrefix), byteArraySuffix)
	b, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, false
	}
	return b, true
}
