package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is a human-readable classification outcome
type Category string

const (
	CategoryAnthropogenic Category = "Anthropogenic"
	CategoryNeutral       Category = "Neutral"
	CategoryProminent     Category = "Prominent"
	CategoryNews          Category = "News"
)

// RawLabel is the label exactly as a classifier emitted it.
// Numeric codes are kept in their decimal form.
type RawLabel string

// Code returns the integer value of a numeric label
func (r RawLabel) Code() (int, bool) {
	code, err := strconv.Atoi(strings.TrimSpace(string(r)))
	if err != nil {
		return 0, false
	}
	return code, true
}

// UnmarshalJSON accepts both JSON numbers and strings
func (r *RawLabel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawLabel(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a number or string: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*r = RawLabel(strconv.FormatInt(i, 10))
		return nil
	}
	// numpy exports integer classes as floats, e.g. -1.0
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*r = RawLabel(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*r = RawLabel(n.String())
	return nil
}

// LabelEntry pairs a category name with the code a classifier emits
type LabelEntry struct {
	Name Category `json:"name" mapstructure:"name"`
	Code int      `json:"code" mapstructure:"code"`
}

// Label map construction errors
var (
	ErrEmptyLabelMap     = errors.New("label map is empty")
	ErrEmptyCategoryName = errors.New("category name is empty")
	ErrDuplicateCategory = errors.New("duplicate category name")
	ErrDuplicateCode     = errors.New("duplicate category code")
)

// LabelMap is a bijective table between category names and codes
type LabelMap struct {
	entries []LabelEntry
	byName  map[Category]int
	byCode  map[int]Category
}

// NewLabelMap builds a LabelMap, rejecting any table that is not bijective
func NewLabelMap(entries []LabelEntry) (*LabelMap, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLabelMap
	}

	m := &LabelMap{
		entries: make([]LabelEntry, 0, len(entries)),
		byName:  make(map[Category]int, len(entries)),
		byCode:  make(map[int]Category, len(entries)),
	}
	for _, e := range entries {
		name := Category(strings.TrimSpace(string(e.Name)))
		if name == "" {
			return nil, ErrEmptyCategoryName
		}
		if _, ok := m.byName[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}
		if other, ok := m.byCode[e.Code]; ok {
			return nil, fmt.Errorf("%w: %d used by %s and %s", ErrDuplicateCode, e.Code, other, name)
		}
		m.byName[name] = e.Code
		m.byCode[e.Code] = name
		m.entries = append(m.entries, LabelEntry{Name: name, Code: e.Code})
	}
	return m, nil
}

// DefaultLabelEntries returns the stance table the shipped models were trained on
func DefaultLabelEntries() []LabelEntry {
	return []LabelEntry{
		{Name: CategoryAnthropogenic, Code: -1},
		{Name: CategoryNeutral, Code: 0},
		{Name: CategoryProminent, Code: 1},
		{Name: CategoryNews, Code: 2},
	}
}

// DefaultLabelMap returns the LabelMap for DefaultLabelEntries
func DefaultLabelMap() *LabelMap {
	m, err := NewLabelMap(DefaultLabelEntries())
	if err != nil {
		panic(err)
	}
	return m
}

// Category returns the category mapped to code
func (m *LabelMap) Category(code int) (Category, bool) {
	c, ok := m.byCode[code]
	return c, ok
}

// Code returns the code mapped to a category name
func (m *LabelMap) Code(name Category) (int, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// Resolve maps a raw classifier label to a category. Numeric labels go
// through the code table; string labels must name a category exactly.
func (m *LabelMap) Resolve(raw RawLabel) (Category, bool) {
	if code, ok := raw.Code(); ok {
		return m.Category(code)
	}
	name := Category(strings.TrimSpace(string(raw)))
	if _, ok := m.byName[name]; ok {
		return name, true
	}
	return "", false
}

// Entries returns the table in declaration order
func (m *LabelMap) Entries() []LabelEntry {
	out := make([]LabelEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Categories returns the category names in declaration order
func (m *LabelMap) Categories() []Category {
	out := make([]Category, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Name
	}
	return out
}

// Len returns the number of categories
func (m *LabelMap) Len() int {
	return len(m.entries)
}
