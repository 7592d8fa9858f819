package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	composed := "Caf\u00e9 visit"
	decomposed := "Cafe\u0301 visit"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, NormalizeName(composed), NormalizeName(decomposed))
	assert.Equal(t, "Workout", NormalizeName("  Workout\t"))
}

func TestValidateName(t *testing.T) {
	n, err := ValidateName(" Read a Book ")
	require.NoError(t, err)
	assert.Equal(t, "Read a Book", n)

	_, err = ValidateName("   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestStatusCountsTowardStreak(t *testing.T) {
	assert.True(t, StatusStreakComplete.CountsTowardStreak())
	assert.False(t, StatusActive.CountsTowardStreak())
	assert.False(t, StatusInactive.CountsTowardStreak())
}

func TestCreationStatus(t *testing.T) {
	assert.Equal(t, StatusActive, CreationStatus(true))
	assert.Equal(t, StatusInactive, CreationStatus(false))
}
