package ruleset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/swn-chargen/internal/game/dice"
	"github.com/cory-johannsen/swn-chargen/internal/game/ruleset"
)

func newTable(src dice.Source) *ruleset.RuleTable {
	return ruleset.NewRuleTable(dice.NewLoggedRoller(src, zap.NewNop()))
}

func TestModifierFor_Table(t *testing.T) {
	expected := map[int]int{
		0: 0,
		3: -2,
		4: -1, 5: -1, 6: -1, 7: -1,
		8: 0, 9: 0, 10: 0, 11: 0, 12: 0, 13: 0,
		14: 1, 15: 1, 16: 1, 17: 1,
		18: 2,
	}
	for value, want := range expected {
		got, err := ruleset.ModifierFor(value)
		require.NoError(t, err, "value %d", value)
		assert.Equal(t, want, got, "value %d", value)
	}
}

func TestModifierFor_RejectsOutOfTable(t *testing.T) {
	for _, v := range []int{-100, -1, 1, 2, 19, 20, 1000} {
		_, err := ruleset.ModifierFor(v)
		require.Error(t, err, "value %d", v)
		assert.True(t, errors.Is(err, ruleset.ErrInvalidAttributeValue))

		var ive *ruleset.InvalidAttributeValueError
		require.True(t, errors.As(err, &ive))
		assert.Equal(t, v, ive.Value)
	}
}

// TestModifierFor_Property checks that modifiers are monotone across the legal range.
func TestModifierFor_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(3, 18).Draw(rt, "a")
		b := rapid.IntRange(a, 18).Draw(rt, "b")
		ma, err := ruleset.ModifierFor(a)
		require.NoError(rt, err)
		mb, err := ruleset.ModifierFor(b)
		require.NoError(rt, err)
		assert.LessOrEqual(rt, ma, mb)
		assert.GreaterOrEqual(rt, ma, -2)
		assert.LessOrEqual(rt, mb, 2)
	})
}

func TestRollAttribute_Range(t *testing.T) {
	table := newTable(dice.NewCryptoSource())
	for i := 0; i < 2000; i++ {
		v := table.RollAttribute()
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 18)
	}
}

func TestRollAttribute_CentralTendency(t *testing.T) {
	table := newTable(dice.NewSeededSource(7))
	var low, mid, high int
	for i := 0; i < 5000; i++ {
		switch v := table.RollAttribute(); {
		case v <= 7:
			low++
		case v <= 13:
			mid++
		default:
			high++
		}
	}
	assert.Greater(t, mid, low)
	assert.Greater(t, mid, high)
}

func TestRollAttribute_SumsThreeDraws(t *testing.T) {
	table := newTable(dice.NewFixedSource(6, 5, 1))
	assert.Equal(t, 12, table.RollAttribute())
}

func TestBoostedValue(t *testing.T) {
	table := newTable(dice.NewCryptoSource())
	assert.Equal(t, 14, table.BoostedValue())
	mod, err := table.ModifierFor(table.BoostedValue())
	require.NoError(t, err)
	assert.Equal(t, 1, mod)
}
