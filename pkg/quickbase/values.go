package quickbase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// ValueType tags the variant held by a FieldValue.
type ValueType int

// Supported field value variants.
const (
	ValueNull ValueType = iota
	ValueString
	ValueNumber
	ValueBool
	ValueTime
	// ValueRaw holds composite JSON (arrays, user objects) verbatim.
	ValueRaw
)

// String implements fmt.Stringer.
func (t ValueType) String() string {
	switch t {
	case ValueNull:
		return "null"
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	case ValueTime:
		return "time"
	case ValueRaw:
		return "raw"
	default:
		return "ValueType(" + strconv.Itoa(int(t)) + ")"
	}
}

// FieldValue is the content of one cell. On the wire it is {"value": X}.
type FieldValue struct {
	typ ValueType
	str string
	num float64
	b   bool
	t   time.Time
	raw json.RawMessage
}

// String creates a text value.
func String(s string) FieldValue {
	return FieldValue{typ: ValueString, str: s}
}

// Number creates a numeric value.
func Number(f float64) FieldValue {
	return FieldValue{typ: ValueNumber, num: f}
}

// Int creates a numeric value from an integer.
func Int(i int64) FieldValue {
	return FieldValue{typ: ValueNumber, num: float64(i)}
}

// Bool creates a checkbox value.
func Bool(b bool) FieldValue {
	return FieldValue{typ: ValueBool, b: b}
}

// Time creates a date/time value. It is sent as an RFC 3339 string.
func Time(t time.Time) FieldValue {
	return FieldValue{typ: ValueTime, t: t}
}

// Null creates an empty value.
func Null() FieldValue {
	return FieldValue{typ: ValueNull}
}

// Raw wraps composite JSON such as multi-select lists or user objects.
func Raw(raw json.RawMessage) FieldValue {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Null()
	}

	return FieldValue{typ: ValueRaw, raw: append(json.RawMessage(nil), raw...)}
}

// ValueOf converts a Go scalar into a FieldValue.
func ValueOf(value any) (FieldValue, error) {
	switch v := value.(type) {
	case nil:
		return Null(), nil
	case FieldValue:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case time.Time:
		return Time(v), nil
	case *time.Time:
		if v == nil {
			return Null(), nil
		}

		return Time(*v), nil
	case json.RawMessage:
		return Raw(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: %q is not a number", ErrFieldConversion, v.String())
		}

		return Number(f), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: %w", ErrFieldConversion, err)
		}

		return Number(f), nil
	default:
		return FieldValue{}, fmt.Errorf("%w: unsupported type %T", ErrFieldConversion, value)
	}
}

// Type returns the variant tag.
func (v FieldValue) Type() ValueType { return v.typ }

// IsNull reports whether the value is empty.
func (v FieldValue) IsNull() bool { return v.typ == ValueNull }

// AsString converts the value to text.
func (v FieldValue) AsString() (string, error) {
	switch v.typ {
	case ValueNull:
		return "", v.nullError("string")
	case ValueString:
		return v.str, nil
	case ValueTime:
		return v.t.Format(time.RFC3339), nil
	case ValueRaw:
		return string(v.raw), nil
	default:
		s, err := cast.ToStringE(v.scalar())

		return s, v.conversionError("string", err)
	}
}

// AsFloat64 converts the value to a float.
func (v FieldValue) AsFloat64() (float64, error) {
	switch v.typ {
	case ValueNull:
		return 0, v.nullError("float64")
	case ValueNumber:
		return v.num, nil
	case ValueString, ValueBool:
		f, err := cast.ToFloat64E(v.scalar())

		return f, v.conversionError("float64", err)
	default:
		return 0, v.conversionError("float64", errUnsupported)
	}
}

// AsInt64 converts the value to an integer. Fractions are truncated.
func (v FieldValue) AsInt64() (int64, error) {
	switch v.typ {
	case ValueNull:
		return 0, v.nullError("int64")
	case ValueNumber, ValueString, ValueBool:
		i, err := cast.ToInt64E(v.scalar())

		return i, v.conversionError("int64", err)
	default:
		return 0, v.conversionError("int64", errUnsupported)
	}
}

// AsBool converts the value to a boolean.
func (v FieldValue) AsBool() (bool, error) {
	switch v.typ {
	case ValueNull:
		return false, v.nullError("bool")
	case ValueBool:
		return v.b, nil
	case ValueString, ValueNumber:
		b, err := cast.ToBoolE(v.scalar())

		return b, v.conversionError("bool", err)
	default:
		return false, v.conversionError("bool", errUnsupported)
	}
}

// AsTime converts the value to a time. Only text and time values convert.
func (v FieldValue) AsTime() (time.Time, error) {
	switch v.typ {
	case ValueNull:
		return time.Time{}, v.nullError("time")
	case ValueTime:
		return v.t, nil
	case ValueString:
		t, err := cast.ToTimeE(v.str)

		return t, v.conversionError("time", err)
	default:
		return time.Time{}, v.conversionError("time", errUnsupported)
	}
}

// String renders the value for display. Null renders as "".
func (v FieldValue) String() string {
	if v.IsNull() {
		return ""
	}

	s, err := v.AsString()
	if err != nil {
		return ""
	}

	return s
}

// MarshalJSON implements json.Marshaler.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	var value any

	switch v.typ {
	case ValueNull:
		return []byte("{}"), nil
	case ValueString:
		value = v.str
	case ValueNumber:
		value = v.num
	case ValueBool:
		value = v.b
	case ValueTime:
		value = v.t.Format(time.RFC3339)
	case ValueRaw:
		value = v.raw
	}

	data, err := json.Marshal(struct {
		Value any `json:"value"`
	}{Value: value})
	if err != nil {
		return nil, fmt.Errorf("marshaling field value: %w", err)
	}

	return data, nil
}

// MarshalYAML implements yaml.Marshaler with the same {value: X} shape as JSON.
func (v FieldValue) MarshalYAML() (interface{}, error) {
	switch v.typ {
	case ValueNull:
		return map[string]interface{}{}, nil
	case ValueRaw:
		var decoded interface{}

		err := json.Unmarshal(v.raw, &decoded)
		if err != nil {
			return nil, fmt.Errorf("marshaling field value: %w", err)
		}

		return map[string]interface{}{"value": decoded}, nil
	case ValueTime:
		return map[string]interface{}{"value": v.t.Format(time.RFC3339)}, nil
	default:
		return map[string]interface{}{"value": v.scalar()}, nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var wire struct {
		Value json.RawMessage `json:"value"`
	}

	err := json.Unmarshal(data, &wire)
	if err != nil {
		return fmt.Errorf("unmarshaling field value: %w", err)
	}

	raw := bytes.TrimSpace(wire.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = Null()

		return nil
	}

	switch raw[0] {
	case '"':
		var s string

		err = json.Unmarshal(raw, &s)
		if err != nil {
			return fmt.Errorf("unmarshaling field value: %w", err)
		}

		*v = String(s)
	case 't', 'f':
		var b bool

		err = json.Unmarshal(raw, &b)
		if err != nil {
			return fmt.Errorf("unmarshaling field value: %w", err)
		}

		*v = Bool(b)
	case '[', '{':
		*v = Raw(raw)
	default:
		f, perr := strconv.ParseFloat(string(raw), 64)
		if perr != nil {
			*v = Raw(raw)

			return nil
		}

		*v = Number(f)
	}

	return nil
}

var errUnsupported = errors.New("unsupported conversion")

func (v FieldValue) scalar() any {
	switch v.typ {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.b
	case ValueTime:
		return v.t
	case ValueRaw:
		return string(v.raw)
	default:
		return nil
	}
}

func (v FieldValue) nullError(target string) error {
	return fmt.Errorf("%w: cannot convert to %s", ErrFieldValueNull, target)
}

func (v FieldValue) conversionError(target string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s to %s: %w", ErrFieldConversion, v.typ, target, err)
}
