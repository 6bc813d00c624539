package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Field is a single name/value pair used to build records in code.
type Field struct {
	Name  string
	Value any
}

// Record is a flat, ordered mapping of field name to scalar value.
//
// Values are string, json.Number, bool or nil. Nested JSON found in source
// files is kept verbatim as json.RawMessage. Source key order is preserved so
// whole-record serialisation matches the input.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord builds a record from fields in order. Go numeric values are
// converted to json.Number.
func NewRecord(fields ...Field) Record {
	r := Record{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, normaliseValue(f.Value))
	}
	return r
}

func (r *Record) set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

func normaliseValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, json.Number, json.RawMessage:
		return x
	case int:
		return json.Number(strconv.Itoa(x))
	case int32:
		return json.Number(strconv.FormatInt(int64(x), 10))
	case int64:
		return json.Number(strconv.FormatInt(x, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(x), 'f', -1, 32))
	case float64:
		return json.Number(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Sprint(x)
	}
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r.keys)
}

// Keys returns field names in source order
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the raw value and whether the field is present
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Text returns the field as plain text; null and missing fields are empty.
func (r Record) Text(name string) string {
	return FormatValue(r.values[name])
}

// Display returns the field for table output; null and missing fields are "-".
func (r Record) Display(name string) string {
	v, ok := r.values[name]
	if !ok || v == nil {
		return "-"
	}
	return FormatValue(v)
}

// Truthy reports whether the field holds a non-empty, non-zero, non-false value.
func (r Record) Truthy(name string) bool {
	switch x := r.values[name].(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// FormatValue renders a scalar the way it appears in the source data.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return string(x)
	case json.RawMessage:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// MarshalJSON encodes the record as an object with keys in source order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, r.values[k]); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CompactJSON returns the single-line JSON form used in context appendices.
func (r Record) CompactJSON() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON decodes a flat JSON object keeping key order and number text.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: record must be a JSON object", ErrInvalidInput)
	}

	out := Record{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrInvalidInput, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		v, err := decodeScalar(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		out.set(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func decodeScalar(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case 'n':
		return nil, nil
	case 't', 'f':
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return nil, err
		}
		return json.RawMessage(buf.Bytes()), nil
	default:
		return json.Number(raw), nil
	}
}

// Table is a named, immutable collection of records.
type Table struct {
	Name    string
	Records []Record
}

// Len returns the record count; a nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Head returns at most n leading records
func (t *Table) Head(n int) []Record {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}

// Dataset is an immutable snapshot of every named table. Reloads replace the
// whole snapshot; tables are never mutated in place.
type Dataset struct {
	tables   map[string]*Table
	names    []string
	LoadedAt time.Time
}

// NewDataset builds a snapshot. A later table with the same name replaces an earlier one.
func NewDataset(tables ...*Table) *Dataset {
	d := &Dataset{
		tables:   make(map[string]*Table, len(tables)),
		LoadedAt: time.Now(),
	}
	for _, t := range tables {
		if t == nil || t.Name == "" {
			continue
		}
		d.tables[t.Name] = t
	}
	d.names = make([]string, 0, len(d.tables))
	for name := range d.tables {
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)
	return d
}

// Table returns the named table, or an empty table when it does not exist.
func (d *Dataset) Table(name string) *Table {
	if d != nil {
		if t, ok := d.tables[name]; ok {
			return t
		}
	}
	return &Table{Name: name}
}

// Has reports whether the named table was loaded
func (d *Dataset) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.tables[name]
	return ok
}

// Names returns the table names sorted alphabetically
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Size returns the total number of records across all tables
func (d *Dataset) Size() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, t := range d.tables {
		n += len(t.Records)
	}
	return n
}

// TableInfo describes a loaded table
type TableInfo struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// BrowseResult is one page of a table
type BrowseResult struct {
	Table      string   `json:"table"`
	Query      string   `json:"query,omitempty"`
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	Columns    []string `json:"columns"`
	Records    []Record `json:"records"`
}
