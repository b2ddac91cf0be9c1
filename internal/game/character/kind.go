package character

import (
	"fmt"
	"strings"
)

// AttributeKind identifies one of the six core attributes. AttributeNone is the
// sentinel meaning "no attribute" and is never a valid mutation target.
type AttributeKind int

const (
	AttributeNone AttributeKind = iota
	Strength
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

var attributeTags = map[AttributeKind]string{
	AttributeNone: "NONE",
	Strength:      "STRENGTH",
	Dexterity:     "DEXTERITY",
	Constitution:  "CONSTITUTION",
	Intelligence:  "INTELLIGENCE",
	Wisdom:        "WISDOM",
	Charisma:      "CHARISMA",
}

// Attributes returns the six real attributes in sheet order.
func Attributes() []AttributeKind {
	return []AttributeKind{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}
}

// String returns the wire tag, e.g. "STRENGTH".
func (a AttributeKind) String() string {
	if tag, ok := attributeTags[a]; ok {
		return tag
	}
	return fmt.Sprintf("AttributeKind(%d)", int(a))
}

// Valid reports whether a is one of the six real attributes.
func (a AttributeKind) Valid() bool {
	return a >= Strength && a <= Charisma
}

// label is the mixed-case spelling used in wire field names ("Strength").
func (a AttributeKind) label() string {
	tag := a.String()
	return tag[:1] + strings.ToLower(tag[1:])
}

// ParseAttributeKind converts an exact wire tag ("STRENGTH", "NONE") to its kind.
func ParseAttributeKind(tag string) (AttributeKind, bool) {
	for kind, t := range attributeTags {
		if t == tag {
			return kind, true
		}
	}
	return AttributeNone, false
}

// LookupAttribute matches free-form user text against the attribute tags,
// ignoring case and surrounding whitespace. "none" resolves to AttributeNone.
//
// Postcondition: returns an error wrapping ErrInvalidAttributeName when name
// matches no tag.
func LookupAttribute(name string) (AttributeKind, error) {
	kind, ok := ParseAttributeKind(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return AttributeNone, fmt.Errorf("%w: %q", ErrInvalidAttributeName, name)
	}
	return kind, nil
}

// DetailKind identifies a free-text detail of the character. DetailNone is
// invalid as a mutation target.
type DetailKind int

const (
	DetailNone DetailKind = iota
	DetailName
)

var detailTags = map[DetailKind]string{
	DetailNone: "NONE",
	DetailName: "NAME",
}

// String returns the wire tag, e.g. "NAME".
func (d DetailKind) String() string {
	if tag, ok := detailTags[d]; ok {
		return tag
	}
	return fmt.Sprintf("DetailKind(%d)", int(d))
}

// ParseDetailKind converts an exact tag ("NAME", "NONE") to its kind.
func ParseDetailKind(tag string) (DetailKind, bool) {
	for kind, t := range detailTags {
		if t == tag {
			return kind, true
		}
	}
	return DetailNone, false
}

// LookupDetail matches free-form user text against the detail tags, ignoring
// case and surrounding whitespace.
func LookupDetail(name string) (DetailKind, error) {
	kind, ok := ParseDetailKind(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return DetailNone, fmt.Errorf("%w: %q", ErrInvalidDetailName, name)
	}
	return kind, nil
}
