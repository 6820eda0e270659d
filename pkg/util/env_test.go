package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("HP_DELAY", "3s")
	assert.Equal(t, 3*time.Second, GetDurationEnv("HP_DELAY", time.Second))

	t.Setenv("HP_DELAY", "250")
	assert.Equal(t, 250*time.Millisecond, GetDurationEnv("HP_DELAY", time.Second))

	t.Setenv("HP_DELAY", "soon")
	assert.Equal(t, time.Second, GetDurationEnv("HP_DELAY", time.Second))
}

func TestGetIntEnvDefault(t *testing.T) {
	assert.Equal(t, int64(7), GetIntEnvDefault("HP_UNSET_INT", 7))
	t.Setenv("HP_INT", "42")
	assert.Equal(t, int64(42), GetIntEnvDefault("HP_INT", 7))
	t.Setenv("HP_INT", "x")
	assert.Equal(t, int64(7), GetIntEnvDefault("HP_INT", 7))
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
