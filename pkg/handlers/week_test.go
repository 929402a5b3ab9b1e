package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeek(t *testing.T) {
	// 2025-01-01 is a Wednesday, so week 1 starts Sunday 2024-12-29.
	got, err := ParseWeek("2025-W1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Sunday, got.Weekday())

	got, err = ParseWeek("2025-W43")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Sunday, got.Weekday())
}

func TestParseWeek_Invalid(t *testing.T) {
	for _, week := range []string{"", "2025", "2025-43", "W43", "2025-W0", "2025-W54", "2025-W43-extra"} {
		_, err := ParseWeek(week)
		assert.Error(t, err, "week %q should be rejected", week)
	}
}
