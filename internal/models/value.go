package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Value is one scalar of a backend summary, kept exactly as the backend sent
// it. Numbers, strings and anything else pass through untouched; a nil
// *Value is an absent or null field.
type Value struct {
	raw json.RawMessage
}

// Float makes a numeric Value, for building summaries by hand.
func Float(v float64) *Value {
	return &Value{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// Text makes a string Value.
func Text(s string) *Value {
	raw, _ := json.Marshal(s)
	return &Value{raw: raw}
}

// Raw returns the JSON text as received.
func (v *Value) Raw() json.RawMessage {
	if v == nil || len(v.raw) == 0 {
		return json.RawMessage("null")
	}
	return v.raw
}

// IsNumber reports whether the backend sent a JSON number.
func (v *Value) IsNumber() bool {
	if v == nil || len(v.raw) == 0 {
		return false
	}
	c := v.raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// Float64 reads the value as a number. Numeric strings count, the way a
// browser chart library coerces them.
func (v *Value) Float64() (float64, bool) {
	if v == nil || len(v.raw) == 0 {
		return 0, false
	}
	if v.IsNumber() {
		f, err := strconv.ParseFloat(string(v.raw), 64)
		return f, err == nil
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String renders the value the way the page shows it: numbers in their
// shortest form, strings as given, and nothing for null, booleans or
// structured values.
func (v *Value) String() string {
	if v == nil || len(v.raw) == 0 {
		return ""
	}
	if v.IsNumber() {
		f, err := strconv.ParseFloat(string(v.raw), 64)
		if err != nil {
			return string(v.raw)
		}
		return formatNumber(f)
	}
	if v.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	}
	return ""
}

func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnmarshalJSON keeps a copy of the raw value.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON writes the value back as received.
func (v *Value) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

var _ msgpack.CustomEncoder = (*Value)(nil)
var _ msgpack.CustomDecoder = (*Value)(nil)

// EncodeMsgpack writes the decoded JSON value.
func (v *Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	var x interface{}
	if err := json.Unmarshal(v.Raw(), &x); err != nil {
		return err
	}
	return enc.Encode(x)
}

// DecodeMsgpack reads any msgpack value back into JSON form.
func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	x, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(x)
	if err != nil {
		return err
	}
	v.raw = raw
	return nil
}
