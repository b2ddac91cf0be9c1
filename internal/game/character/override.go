package character

// OverrideOneAttribute moves the boost to attr:
//
//  1. a previously boosted attribute gets its original value back and its
//     modifier recomputed;
//  2. attr's current value is remembered as the new original;
//  3. attr is set to the boosted value and its modifier recomputed;
//  4. the slot records attr.
//
// Boosting the attribute that already holds the boost captures the boosted
// value itself as the original.
//
// Postcondition: returns an *InvalidAttributeError for AttributeNone. If the
// value being restored has no modifier the error is returned and the
// character is unchanged.
func (c *Character) OverrideOneAttribute(attr AttributeKind) error {
	if !attr.Valid() {
		return &InvalidAttributeError{Attribute: attr}
	}

	values := c.values
	modifiers := c.modifiers
	original := c.values[attr]

	if prev := c.overridden; prev.Valid() {
		mod, err := c.modifierOf(c.original)
		if err != nil {
			return err
		}
		values[prev] = c.original
		modifiers[prev] = mod
	}

	boosted := c.rules.BoostedValue()
	mod, err := c.rules.ModifierFor(boosted)
	if err != nil {
		return err
	}
	values[attr] = boosted
	modifiers[attr] = mod

	c.values = values
	c.modifiers = modifiers
	c.original = original
	c.overridden = attr
	return nil
}
