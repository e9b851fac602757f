package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// flagPrefix is prepended to option names that lack it.
const flagPrefix = "--"

type valueKind int

const (
	kindFlag valueKind = iota
	kindString
	kindList
)

// Value is the value of a single option.
type Value struct {
	kind valueKind
	str  string
	list []string
}

// NoValue returns a value that serializes as a bare flag.
func NoValue() Value {
	return Value{kind: kindFlag}
}

// String returns a single string value. It is split on commas when the
// command is built. An empty string behaves like NoValue.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// List returns an ordered list value. Elements are used as-is.
// An empty list produces no flags at all.
func List(values ...string) Value {
	return Value{kind: kindList, list: append([]string(nil), values...)}
}

// IsFlag reports whether the value serializes as a bare flag.
func (v Value) IsFlag() bool {
	return v.kind == kindFlag || (v.kind == kindString && v.str == "")
}

// Choices returns the values emitted for the option, one flag per element.
// It returns nil for flags.
func (v Value) Choices() []string {
	switch {
	case v.IsFlag():
		return nil
	case v.kind == kindList:
		return append([]string(nil), v.list...)
	default:
		return strings.Split(v.str, ",")
	}
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	switch v.kind {
	case kindString:
		return fmt.Sprintf("String(%q)", v.str)
	case kindList:
		return fmt.Sprintf("List(%q)", v.list)
	default:
		return "NoValue()"
	}
}

// Option is a named entry of an OptionSet.
type Option struct {
	Name  string
	Value Value
}

// OptionSet is an ordered mapping from option name to value.
// The zero value is an empty set ready to use.
type OptionSet struct {
	entries []Option
	index   map[string]int
}

// NewOptionSet returns an empty option set.
func NewOptionSet() *OptionSet {
	return &OptionSet{}
}

// Set adds or replaces an option. A replaced option keeps its position.
func (s *OptionSet) Set(name string, v Value) *OptionSet {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Value = v
		return s
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Option{Name: name, Value: v})
	return s
}

// Flag adds an option with no value.
func (s *OptionSet) Flag(name string) *OptionSet {
	return s.Set(name, NoValue())
}

// Single adds an option with a single, comma-splittable string value.
func (s *OptionSet) Single(name, value string) *OptionSet {
	return s.Set(name, String(value))
}

// Multi adds an option with a list of values.
func (s *OptionSet) Multi(name string, values ...string) *OptionSet {
	return s.Set(name, List(values...))
}

// Get returns the value stored under name.
func (s *OptionSet) Get(name string) (Value, bool) {
	if s == nil || s.index == nil {
		return Value{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Value{}, false
	}
	return s.entries[i].Value, true
}

// Choices returns the resolved choices for name, or nil.
func (s *OptionSet) Choices(name string) []string {
	v, ok := s.Get(name)
	if !ok {
		return nil
	}
	return v.Choices()
}

// Len returns the number of options.
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Options returns a copy of the entries in order.
func (s *OptionSet) Options() []Option {
	if s == nil {
		return nil
	}
	return append([]Option(nil), s.entries...)
}

// Names returns the option names in order.
func (s *OptionSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Merge copies every option of other into s, overriding existing names.
func (s *OptionSet) Merge(other *OptionSet) *OptionSet {
	for _, e := range other.Options() {
		s.Set(e.Name, e.Value)
	}
	return s
}

// FromMap builds an OptionSet from loosely typed values, with keys in sorted
// order. Supported values are nil, bool, string, []string, []any of scalars,
// and numbers.
func FromMap(m map[string]any) (*OptionSet, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := NewOptionSet()
	for _, k := range keys {
		v, err := ValueOf(m[k])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k, err)
		}
		s.Set(k, v)
	}
	return s, nil
}

// ValueOf converts a loosely typed value into a Value.
// Booleans, nil and numeric zero become flags.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil, bool:
		return NoValue(), nil
	case int:
		if v == 0 {
			return NoValue(), nil
		}
		return String(strconv.Itoa(v)), nil
	case int64:
		if v == 0 {
			return NoValue(), nil
		}
		return String(strconv.FormatInt(v, 10)), nil
	case float64:
		if v == 0 {
			return NoValue(), nil
		}
		return String(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case string:
		return String(v), nil
	case []string:
		return List(v...), nil
	case []any:
		items := make([]string, 0, len(v))
		for i, item := range v {
			s, err := scalarString(item)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, s)
		}
		return List(items...), nil
	default:
		s, err := scalarString(v)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	}
}

func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// NormalizeName prefixes name with "--" unless it already starts with it.
func NormalizeName(name string) string {
	if strings.HasPrefix(name, flagPrefix) {
		return name
	}
	return flagPrefix + name
}
