package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod_DefaultEndIsNextLocalMidnight(t *testing.T) {
	before := time.Now()
	_, to, err := parsePeriod("", "")
	require.NoError(t, err)
	after := time.Now()
	if before.Day() != after.Day() {
		t.Skip("clock crossed midnight mid-test")
	}

	want := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location()).AddDate(0, 0, 1)
	assert.True(t, to.Equal(want), "got %s, want %s", to, want)
}

func TestParsePeriod_ExplicitEndCoversWholeDay(t *testing.T) {
	from, to, err := parsePeriod("2026-03-01", "2026-03-02")
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))
}
