// Package ruleset holds the Stars Without Number attribute rules: how a score
// is rolled, how it maps to a modifier, and the fixed boost target.
package ruleset

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/swn-chargen/internal/game/dice"
)

// BoostedValue is the fixed score written into an attribute when it is boosted.
const BoostedValue = 14

// Unrolled is the score of an attribute that has not been rolled yet.
const Unrolled = 0

// ErrInvalidAttributeValue is matched by every InvalidAttributeValueError.
var ErrInvalidAttributeValue = errors.New("invalid attribute value")

// InvalidAttributeValueError reports a score outside the modifier table.
type InvalidAttributeValueError struct {
	Value int
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("%s: %d", ErrInvalidAttributeValue, e.Value)
}

// Is reports whether target is ErrInvalidAttributeValue.
func (e *InvalidAttributeValueError) Is(target error) bool {
	return target == ErrInvalidAttributeValue
}

// attributeDice is the attribute roll: three six-sided dice, summed.
var attributeDice = dice.MustParse("3d6")

// modifiers maps each legal score to its modifier.
var modifiers = map[int]int{
	3: -2,
	4: -1, 5: -1, 6: -1, 7: -1,
	8: 0, 9: 0, 10: 0, 11: 0, 12: 0, 13: 0,
	14: 1, 15: 1, 16: 1, 17: 1,
	18: 2,
}

// ModifierFor returns the modifier for an attribute score. An unrolled score
// (0) maps to 0.
//
// Postcondition: returns an *InvalidAttributeValueError for any value that is
// neither 0 nor in [3, 18].
func ModifierFor(value int) (int, error) {
	if value == Unrolled {
		return 0, nil
	}
	mod, ok := modifiers[value]
	if !ok {
		return 0, &InvalidAttributeValueError{Value: value}
	}
	return mod, nil
}

// Roller is the dice capability a RuleTable draws attribute scores from.
type Roller interface {
	Roll(expr dice.Expression) (dice.RollResult, error)
}

// RuleTable rolls attribute scores and derives modifiers. The randomness is
// injected through Roller so callers can make rolls deterministic.
type RuleTable struct {
	roller Roller
}

// NewRuleTable returns a RuleTable that rolls with roller.
//
// Precondition: roller must be non-nil.
func NewRuleTable(roller Roller) *RuleTable {
	return &RuleTable{roller: roller}
}

// RollAttribute returns the sum of three independent 1-6 draws.
//
// Postcondition: 3 <= result <= 18.
func (t *RuleTable) RollAttribute() int {
	res, err := t.roller.Roll(attributeDice)
	if err != nil {
		// attributeDice is parsed at init; a failure here is a programming error.
		panic("ruleset: rolling attribute: " + err.Error())
	}
	return res.Total()
}

// ModifierFor is ModifierFor exposed on the table for callers holding one.
func (t *RuleTable) ModifierFor(value int) (int, error) {
	return ModifierFor(value)
}

// BoostedValue returns the fixed boost target.
func (t *RuleTable) BoostedValue() int {
	return BoostedValue
}
