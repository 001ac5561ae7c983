package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerationLimiterLocal(t *testing.T) {
	l := NewGenerationLimiter(nil, time.Hour, 3)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))

	// limits are per user
	assert.True(t, l.Allow(2))
}

func TestGenerationLimiterWindowSlides(t *testing.T) {
	l := NewGenerationLimiter(nil, 50*time.Millisecond, 1)

	assert.True(t, l.Allow(7))
	assert.False(t, l.Allow(7))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, l.Allow(7))
}
