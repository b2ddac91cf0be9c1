// Package dice provides the randomness abstraction and roll-result types used
// by the character generator's rule table.
package dice

import (
	"fmt"
	"strings"
)

// RollResult holds the audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "3d6"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "3d6: 4+2+6 = 12", with the modifier appended
// to the dice terms when it is non-zero.
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	terms := make([]string, 0, len(r.Dice)+1)
	for _, d := range r.Dice {
		terms = append(terms, fmt.Sprintf("%d", d))
	}
	s := strings.Join(terms, "+")
	if r.Modifier != 0 {
		s += fmt.Sprintf("%+d", r.Modifier)
	}
	return fmt.Sprintf("%s: %s = %d", r.Expression, s, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
