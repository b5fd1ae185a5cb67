package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Summary is the aggregate returned by the backend for one uploaded CSV.
// Fields hold whatever the backend sent; they are nil when it omits them.
type Summary struct {
	Total       *Value     `json:"total,omitempty" msgpack:"total,omitempty"`
	AvgFlow     *Value     `json:"avgFlow,omitempty" msgpack:"avgFlow,omitempty"`
	AvgPressure *Value     `json:"avgPressure,omitempty" msgpack:"avgPressure,omitempty"`
	AvgTemp     *Value     `json:"avgTemp,omitempty" msgpack:"avgTemp,omitempty"`
	Types       TypeCounts `json:"types" msgpack:"types"`

	// Raw is the response body exactly as received.
	Raw json.RawMessage `json:"-" msgpack:"-"`
}

// TypeCount is one equipment type and how many records carry it.
type TypeCount struct {
	Label string `msgpack:"label"`
	Count *Value `msgpack:"count"`
}

// TypeCounts keeps the key order of the JSON object it was decoded from.
type TypeCounts []TypeCount

// ParseSummary decodes a backend response body and keeps a copy of it.
// A null body means there is no summary and yields nil.
func ParseSummary(data []byte) (*Summary, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding summary: %w", err)
	}
	s.Raw = append(json.RawMessage(nil), data...)
	return &s, nil
}

// Labels returns the type labels in received order.
func (t TypeCounts) Labels() []string {
	labels := make([]string, len(t))
	for i, tc := range t {
		labels[i] = tc.Label
	}
	return labels
}

// Counts returns the type counts in received order.
func (t TypeCounts) Counts() []*Value {
	counts := make([]*Value, len(t))
	for i, tc := range t {
		counts[i] = tc.Count
	}
	return counts
}

// UnmarshalJSON reads a JSON object token by token so the key order survives.
func (t *TypeCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*t = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("types: expected object, got %v", tok)
	}

	counts := TypeCounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("types: unexpected key %v", keyTok)
		}
		var count *Value
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("types[%s]: %w", key, err)
		}
		counts = append(counts, TypeCount{Label: key, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = counts
	return nil
}

// MarshalJSON writes the counts back as an object in the same order.
func (t TypeCounts) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tc.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(tc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
