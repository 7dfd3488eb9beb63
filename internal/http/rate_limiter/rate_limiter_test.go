package rate_limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstPerClient(t *testing.T) {
	l := New(0.001, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	assert.True(t, l.Allow("b"))
}

func TestLimiter_Cleanup(t *testing.T) {
	l := New(1, 1)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.GetVisitor("old")
	now = now.Add(10 * time.Minute)
	l.GetVisitor("fresh")

	assert.Equal(t, 1, l.Cleanup(5*time.Minute))
	assert.Len(t, l.visitors, 1)

	assert.Equal(t, 0, l.Cleanup(5*time.Minute))
}
