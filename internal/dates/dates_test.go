package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoffOrNow_Formats(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2025-01-02T15:04:05", time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2025-01-02T15:04:05Z", time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2025-01-02Tgarbage", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, substituted := CutoffOrNow(tc.raw)
		require.False(t, substituted, "input %q should parse", tc.raw)
		assert.True(t, got.Equal(tc.want), "input %q: got %v want %v", tc.raw, got, tc.want)
	}
}

func TestCutoffOrNow_Malformed(t *testing.T) {
	before := time.Now()
	got, substituted := CutoffOrNow("not a date")
	assert.True(t, substituted)
	assert.False(t, got.Before(before.UTC().Add(-time.Second)))
}

func TestCutoffOrNow_Empty(t *testing.T) {
	_, substituted := CutoffOrNow("  ")
	assert.False(t, substituted, "empty cutoff means now, not a malformed input")
}
