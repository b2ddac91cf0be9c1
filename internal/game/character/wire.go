package character

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Wire is the flat structured form of a character exchanged with clients.
type Wire map[string]any

// Wire field names.
const (
	FieldName                    = "mName"
	FieldChangedAttribute        = "mChangedAttribute"
	FieldChangedAttributeOrigVal = "mChangedAttributeOriginalValue"
)

// ValueField returns the wire name of a's value, e.g. "mStrength".
func ValueField(a AttributeKind) string { return "m" + a.label() }

// ModifierField returns the wire name of a's modifier, e.g. "mStrengthModifier".
func ModifierField(a AttributeKind) string { return "m" + a.label() + "Modifier" }

type fieldKind int

const (
	scalarField fieldKind = iota
	attributeTagField
)

// wireField maps one wire name to its accessor pair.
type wireField struct {
	name string
	kind fieldKind
	get  func(c *Character) any
	set  func(c *Character, v any) error
}

var wireFields = buildWireFields()

func buildWireFields() []wireField {
	fields := []wireField{{
		name: FieldName,
		kind: scalarField,
		get:  func(c *Character) any { return c.name },
		set:  func(c *Character, v any) error { c.name = v; return nil },
	}}
	for _, a := range Attributes() {
		a := a
		fields = append(fields, wireField{
			name: ValueField(a),
			kind: scalarField,
			get:  func(c *Character) any { return c.values[a] },
			set:  func(c *Character, v any) error { c.values[a] = v; return nil },
		})
	}
	for _, a := range Attributes() {
		a := a
		fields = append(fields, wireField{
			name: ModifierField(a),
			kind: scalarField,
			get:  func(c *Character) any { return c.modifiers[a] },
			set:  func(c *Character, v any) error { c.modifiers[a] = v; return nil },
		})
	}
	return append(fields,
		wireField{
			name: FieldChangedAttribute,
			kind: attributeTagField,
			get:  func(c *Character) any { return c.overridden.String() },
			set: func(c *Character, v any) error {
				tag, ok := v.(string)
				if !ok {
					return &InvalidEnumValueError{Field: FieldChangedAttribute, Value: v}
				}
				kind, ok := ParseAttributeKind(tag)
				if !ok {
					return &InvalidEnumValueError{Field: FieldChangedAttribute, Value: v}
				}
				c.overridden = kind
				return nil
			},
		},
		wireField{
			name: FieldChangedAttributeOrigVal,
			kind: scalarField,
			get:  func(c *Character) any { return c.original },
			set:  func(c *Character, v any) error { c.original = v; return nil },
		},
	)
}

// Serialize returns every field under its wire name, with the boost slot as
// its attribute tag.
func (c *Character) Serialize() Wire {
	out := make(Wire, len(wireFields))
	for _, f := range wireFields {
		out[f.name] = f.get(c)
	}
	return out
}

// Deserialize assigns every recognized key of data. Unknown keys are skipped.
// Scalar fields take the value as given, except that integral JSON numbers
// become ints. An enum field with an unknown tag rejects the whole call.
//
// Postcondition: on error the character is unchanged.
func (c *Character) Deserialize(data Wire) error {
	staged := *c
	for _, f := range wireFields {
		v, ok := data[f.name]
		if !ok {
			continue
		}
		if f.kind == scalarField {
			v = normalizeNumber(v)
		}
		if err := f.set(&staged, v); err != nil {
			return err
		}
	}
	*c = staged
	return nil
}

// MarshalJSON encodes the serialized form.
func (c *Character) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Serialize())
}

// UnmarshalJSON decodes a JSON object and applies it with Deserialize.
//
// Precondition: c must have been built by New or FromWire.
func (c *Character) UnmarshalJSON(data []byte) error {
	w, err := ParseWire(data)
	if err != nil {
		return err
	}
	return c.Deserialize(w)
}

// normalizeNumber turns integral JSON numbers within the int32 range into
// ints. Every other value, including fractional numbers, is returned unchanged.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return normalizeNumber(f)
		}
	}
	return v
}

// ParseWire decodes a JSON object into Wire form.
//
// Postcondition: returns an error wrapping ErrMalformedInput when data is not
// a single JSON object.
func ParseWire(data []byte) (Wire, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var w Wire
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if w == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedInput)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedInput)
	}
	return w, nil
}

// MarshalPretty renders w as indented JSON with sorted keys.
func (w Wire) MarshalPretty() ([]byte, error) {
	return json.MarshalIndent(w, "", "    ")
}
