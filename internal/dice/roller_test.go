package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomRollerRange(t *testing.T) {
	roller, err := NewRandomRoller()
	require.NoError(t, err)
	seen := make(map[int]int)
	for i := 0; i < 500; i++ {
		values := roller.Roll(6)
		require.Len(t, values, 6)
		for _, v := range values {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, Sides)
			seen[v]++
		}
	}
	assert.Len(t, seen, Sides, "every face should appear over 3000 dice")
}

func TestSeededRollerIsDeterministic(t *testing.T) {
	a := NewSeededRoller(42)
	b := NewSeededRoller(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Roll(6), b.Roll(6))
	}
}

func TestScriptedRoller(t *testing.T) {
	roller := NewScriptedRoller([]int{1, 1, 1, 4, 6, 3}, []int{5})
	assert.Equal(t, []int{1, 1, 1}, roller.Roll(3))
	assert.Equal(t, []int{5, 3, 4}, roller.Roll(3))
	assert.Equal(t, []int{2, 3}, roller.Roll(2))

	roller.Push([]int{6, 6, 6})
	assert.Equal(t, []int{6, 6, 6}, roller.Roll(3))
}
