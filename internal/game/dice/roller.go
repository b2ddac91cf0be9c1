package dice

import "fmt"

// Roll evaluates an Expression using the given Source.
//
// Precondition: src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and every die is in
// [1, expr.Sides]; returns an error for an Expression that did not come from Parse.
func Roll(expr Expression, src Source) (RollResult, error) {
	if expr.Count < 1 || expr.Sides < 2 {
		return RollResult{}, fmt.Errorf("dice: invalid expression %+v", expr)
	}
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.String(),
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}, nil
}
