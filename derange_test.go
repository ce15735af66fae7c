package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerangeTooFewItems(t *testing.T) {
	for _, items := range [][]string{nil, {}, {"Анна"}} {
		_, err := derange(items)
		require.ErrorIs(t, err, errTooFewItems)
	}
}

func TestDerangeTwoItemsSwap(t *testing.T) {
	// The only derangement of two items is the swap.
	result, err := derange([]string{"Анна", "Борис"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Борис", "Анна"}, result)
}

func TestDerangeNoFixedPoints(t *testing.T) {
	roster := []string{"Анна", "Борис", "Вера", "Глеб", "Дарья"}

	for range 50 {
		result, err := derange(roster)
		require.NoError(t, err)
		require.Len(t, result, len(roster))

		assert.ElementsMatch(t, roster, result)
		for i := range roster {
			assert.NotEqual(t, roster[i], result[i], "fixed point at position %d", i)
		}
	}
}

func TestDerangeLeavesInputUntouched(t *testing.T) {
	roster := []string{"Анна", "Борис", "Вера"}

	_, err := derange(roster)
	require.NoError(t, err)
	assert.Equal(t, []string{"Анна", "Борис", "Вера"}, roster)
}
