package options

import (
	"fmt"
	"strings"
)

const displayHeader = "Global Config Settings"

// Option pairs a name with a value. It is used both for defaults and for
// snapshots of current values.
type Option struct {
	Name  string
	Value any
}

// Store keeps the default and current value of every option. The key set is
// fixed at construction.
type Store struct {
	order    []string
	defaults map[string]any
	values   map[string]any
}

// New builds a Store whose current values start as the given defaults.
func New(defaults []Option) (*Store, error) {
	s := &Store{
		order:    make([]string, 0, len(defaults)),
		defaults: make(map[string]any, len(defaults)),
		values:   make(map[string]any, len(defaults)),
	}
	for _, opt := range defaults {
		if opt.Name == "" {
			return nil, ErrEmptyOptionName
		}
		if _, exists := s.defaults[opt.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOption, opt.Name)
		}
		s.order = append(s.order, opt.Name)
		s.defaults[opt.Name] = opt.Value
		s.values[opt.Name] = opt.Value
	}
	return s, nil
}

// Get returns the current value of key.
func (s *Store) Get(key string) (any, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, &UnknownOptionError{Key: key}
	}
	return value, nil
}

// Set replaces the current value of key. The value is not validated.
func (s *Store) Set(key string, value any) error {
	if !s.Has(key) {
		return &UnknownOptionError{Key: key}
	}
	s.values[key] = value
	return nil
}

// Reset restores key to its default value.
func (s *Store) Reset(key string) error {
	def, ok := s.defaults[key]
	if !ok {
		return &UnknownOptionError{Key: key}
	}
	s.values[key] = def
	return nil
}

// Default returns the default value of key.
func (s *Store) Default(key string) (any, error) {
	def, ok := s.defaults[key]
	if !ok {
		return nil, &UnknownOptionError{Key: key}
	}
	return def, nil
}

// Has reports whether key is a known option.
func (s *Store) Has(key string) bool {
	_, ok := s.defaults[key]
	return ok
}

// Keys returns the option names in default order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Defaults returns a copy of the default option set.
func (s *Store) Defaults() []Option {
	return s.collect(s.defaults)
}

// Snapshot returns a copy of the current values in default order.
func (s *Store) Snapshot() []Option {
	return s.collect(s.values)
}

func (s *Store) collect(src map[string]any) []Option {
	out := make([]Option, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, Option{Name: key, Value: src[key]})
	}
	return out
}

// String lists every current key/value pair. The layout is for humans only.
func (s *Store) String() string {
	var b strings.Builder
	b.WriteString(displayHeader)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(displayHeader)))
	for _, key := range s.order {
		fmt.Fprintf(&b, "\n%s: %s", key, FormatValue(s.values[key]))
	}
	return b.String()
}

// FormatValue renders an option value for display.
func FormatValue(value any) string {
	if value == nil {
		return "None"
	}
	return fmt.Sprintf("%v", value)
}
