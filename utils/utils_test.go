package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInRange(t *testing.T) {
	assert.True(t, IsInRange(60.0, 60.0, 100.0))
	assert.True(t, IsInRange(60.0, 100.0, 100.0))
	assert.False(t, IsInRange(60.0, 100.5, 100.0))
	assert.False(t, IsInRange(0, -1, 10))
}

func TestUnpack2(t *testing.T) {
	k, v := Unpack2(strings.SplitN("Vitals.1/1-0=72", "=", 2))
	assert.Equal(t, "Vitals.1/1-0", k)
	assert.Equal(t, "72", v)

	k, v = Unpack2([]string{"only"})
	assert.Equal(t, "only", k)
	assert.Empty(t, v)

	k, v = Unpack2([]string(nil))
	assert.Empty(t, k)
	assert.Empty(t, v)
}
