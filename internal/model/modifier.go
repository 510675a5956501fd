package model

import (
	"strings"
)

//go:generate go tool stringer -type=Modifier -linecomment -output=modifier_string.go

// Modifier is a single declaration modifier. Constants are declared in the
// canonical order used when rendering a modifier list.
type Modifier int

const (
	Public       Modifier = iota // public
	Protected                    // protected
	Private                      // private
	Abstract                     // abstract
	Static                       // static
	Final                        // final
	Synchronized                 // synchronized
	Native                       // native
	Strictfp                     // strictfp

	modifierCount = iota
)

// AllModifiers returns every known modifier in canonical order.
func AllModifiers() []Modifier {
	mods := make([]Modifier, 0, modifierCount)
	for m := range Modifier(modifierCount) {
		mods = append(mods, m)
	}

	return mods
}

// ParseModifier returns the modifier spelled by s (case-insensitive).
func ParseModifier(s string) (Modifier, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllModifiers() {
		if m.String() == s {
			return m, true
		}
	}

	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ModifierSet is a set of modifiers stored as a bit mask.
type ModifierSet uint16

// NewModifierSet builds a set holding the given modifiers.
func NewModifierSet(mods ...Modifier) ModifierSet {
	var s ModifierSet
	for _, m := range mods {
		s = s.With(m)
	}

	return s
}

// Has reports whether m is in the set.
func (s ModifierSet) Has(m Modifier) bool {
	return s&(1<<uint(m)) != 0
}

// With returns a copy of the set with m added.
func (s ModifierSet) With(m Modifier) ModifierSet {
	return s | 1<<uint(m)
}

// Without returns a copy of the set with m removed.
func (s ModifierSet) Without(m Modifier) ModifierSet {
	return s &^ (1 << uint(m))
}

// IsEmpty reports whether the set holds no modifiers.
func (s ModifierSet) IsEmpty() bool {
	return s == 0
}

// Modifiers returns the members of the set in canonical order.
func (s ModifierSet) Modifiers() []Modifier {
	var mods []Modifier
	for _, m := range AllModifiers() {
		if s.Has(m) {
			mods = append(mods, m)
		}
	}

	return mods
}

// String returns the modifiers joined by spaces, e.g. "public abstract".
func (s ModifierSet) String() string {
	mods := s.Modifiers()
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}

	return strings.Join(parts, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (s ModifierSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
