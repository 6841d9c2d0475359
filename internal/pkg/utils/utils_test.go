package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	for _, n := range []int{1, 8, 32, 33} {
		s, err := GenerateRandomString(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
	}

	a, _ := GenerateRandomString(32)
	b, _ := GenerateRandomString(32)
	assert.NotEqual(t, a, b)

	_, err := GenerateRandomString(0)
	assert.Error(t, err)
}

func TestFormatInChina(t *testing.T) {
	assert.Equal(t, "", FormatInChina(time.Time{}))
	ts := time.Date(2026, 1, 1, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-02 00:30", FormatInChina(ts))
}
