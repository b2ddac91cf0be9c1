// Package character defines the character sheet state machine: six rolled
// attributes with derived modifiers, a name, and a single boost slot.
package character

import (
	"fmt"

	"github.com/cory-johannsen/swn-chargen/internal/game/ruleset"
)

// DefaultName is the name every new character starts with.
const DefaultName = "Default Name"

// Rules is the rule-table capability a Character needs.
type Rules interface {
	RollAttribute() int
	ModifierFor(value int) (int, error)
	BoostedValue() int
}

// Character is one session's character sheet.
//
// Scalar fields hold whatever value they were last given. Operations write
// ints and strings; Deserialize may store an uploaded value of another type
// verbatim, and that value survives until an operation overwrites it.
//
// Invariant: after any operation that touches an attribute, its modifier
// equals ModifierFor(value).
// Invariant: at most one attribute is overridden at a time.
type Character struct {
	rules Rules

	name      any
	values    [Charisma + 1]any
	modifiers [Charisma + 1]any

	overridden AttributeKind
	original   any
}

// New returns a character with every field at its default.
//
// Precondition: rules must be non-nil.
// Postcondition: name is DefaultName; all values, modifiers and the original
// value are 0; no attribute is overridden.
func New(rules Rules) *Character {
	c := &Character{
		rules:      rules,
		name:       DefaultName,
		overridden: AttributeNone,
		original:   0,
	}
	for _, a := range Attributes() {
		c.values[a] = 0
		c.modifiers[a] = 0
	}
	return c
}

// FromWire returns a default character with data merged over it.
//
// Postcondition: unrecognized keys are ignored; an invalid enum tag returns
// an error and no character.
func FromWire(rules Rules, data Wire) (*Character, error) {
	c := New(rules)
	if err := c.Deserialize(data); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the character name. A non-string uploaded name is formatted.
func (c *Character) Name() string {
	if s, ok := c.name.(string); ok {
		return s
	}
	return fmt.Sprint(c.name)
}

// Value returns the score of a, or 0 when a is AttributeNone or the stored
// value is not an integer.
func (c *Character) Value(a AttributeKind) int {
	if !a.Valid() {
		return 0
	}
	n, _ := asInt(c.values[a])
	return n
}

// Modifier returns the modifier of a, or 0 when a is AttributeNone or the
// stored modifier is not an integer.
func (c *Character) Modifier(a AttributeKind) int {
	if !a.Valid() {
		return 0
	}
	n, _ := asInt(c.modifiers[a])
	return n
}

// Overridden returns the attribute currently holding the boost, or AttributeNone.
func (c *Character) Overridden() AttributeKind {
	return c.overridden
}

// OverriddenOriginalValue returns the score that will be restored when the
// boost moves. It is only meaningful while Overridden() != AttributeNone.
func (c *Character) OverriddenOriginalValue() int {
	n, _ := asInt(c.original)
	return n
}

// RollAllAttributes rolls every attribute independently and recomputes its
// modifier. The name and the boost slot are left untouched, so a boosted
// attribute is overwritten without updating the slot's original value.
func (c *Character) RollAllAttributes() {
	for _, a := range Attributes() {
		v := c.rules.RollAttribute()
		mod, err := c.rules.ModifierFor(v)
		if err != nil {
			panic(fmt.Sprintf("character: rolled score %d has no modifier: %v", v, err))
		}
		c.values[a] = v
		c.modifiers[a] = mod
	}
}

// SetDetail sets a free-text detail. Only DetailName is settable.
//
// Postcondition: returns an *InvalidDetailError for any other kind and leaves
// the character unchanged.
func (c *Character) SetDetail(detail DetailKind, value string) error {
	if detail != DetailName {
		return &InvalidDetailError{Detail: detail}
	}
	c.name = value
	return nil
}

// modifierOf derives the modifier for a stored value of any type.
func (c *Character) modifierOf(v any) (int, error) {
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %v (%T)", ruleset.ErrInvalidAttributeValue, v, v)
	}
	return c.rules.ModifierFor(n)
}

// asInt reports the integer held by v, if any.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	default:
		return 0, false
	}
}
