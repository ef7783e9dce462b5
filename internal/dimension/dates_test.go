package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateSerial(t *testing.T) {
	// (45000 - 25569) * 86400 seconds after the Unix epoch is 2023-03-15.
	got, ok := NormalizeDate(float64(45000))
	require.True(t, ok)
	assert.Equal(t, "2023-03-15", got)

	got, ok = NormalizeDate(45010)
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)
}

func TestNormalizeDateSerialString(t *testing.T) {
	got, ok := NormalizeDate("45010")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)
}

func TestNormalizeDateSerialFractionKeepsDate(t *testing.T) {
	got, ok := NormalizeDate(45010.75)
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)
}

func TestNormalizeDateDayMonthYear(t *testing.T) {
	got, ok := NormalizeDate("25/03/2023")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)

	got, ok = NormalizeDate("5/3/2023")
	require.True(t, ok)
	assert.Equal(t, "2023-03-05", got)
}

func TestNormalizeDateISOPrefix(t *testing.T) {
	got, ok := NormalizeDate("2023-03-25")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)

	got, ok = NormalizeDate("2023-03-25T10:30:00")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)

	got, ok = NormalizeDate("2023-03-25 10:30:00")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)
}

func TestNormalizeDateEquivalentRepresentations(t *testing.T) {
	inputs := []any{45010, "45010", "25/03/2023", "2023-03-25", "2023-03-25T10:30:00"}
	for _, input := range inputs {
		got, ok := NormalizeDate(input)
		require.True(t, ok, "input %v", input)
		assert.Equal(t, "2023-03-25", got, "input %v", input)
	}
}

func TestNormalizeDateFallbackLayouts(t *testing.T) {
	got, ok := NormalizeDate("2023/03/25")
	require.True(t, ok)
	assert.Equal(t, "2023-03-25", got)
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, input := range []any{nil, "", "   ", "pendiente", "99/99"} {
		_, ok := NormalizeDate(input)
		assert.False(t, ok, "input %v", input)
	}
}
