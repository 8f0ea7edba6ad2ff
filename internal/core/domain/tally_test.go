package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTallyAdd(t *testing.T) {
	var tally CategoryTally

	for _, cat := range Categories() {
		tally.Add(cat)
	}
	tally.Add(StatusEqual)

	assert.Equal(t, 2, tally.Equal)
	assert.Equal(t, 1, tally.Similar)
	assert.Equal(t, 1, tally.Strange)
	assert.Equal(t, 8, tally.Total())

	t.Run("unclassified is not counted", func(t *testing.T) {
		before := tally.Total()
		tally.Add(StatusUnclassified)
		assert.Equal(t, before, tally.Total())
	})
}

func TestCategoryTallyCount(t *testing.T) {
	tally := CategoryTally{Equal: 3, Suppressed: 1}

	assert.Equal(t, 3, tally.Count(StatusEqual))
	assert.Equal(t, 1, tally.Count(StatusSuppressed))
	assert.Equal(t, 0, tally.Count(StatusNew))
	assert.Equal(t, 0, tally.Count(StatusUnclassified))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusUnclassified.Terminal())
	for _, cat := range Categories() {
		assert.True(t, cat.Terminal(), "category %s", cat)
	}
}
