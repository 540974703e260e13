package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRunLaterToday(t *testing.T) {
	now := time.Date(2025, 6, 1, 1, 30, 0, 0, time.UTC)
	next := nextRun(now, 2, 0)
	assert.Equal(t, time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC), next)
}

func TestNextRunRollsOverToTomorrow(t *testing.T) {
	now := time.Date(2025, 6, 1, 2, 0, 1, 0, time.UTC)
	next := nextRun(now, 2, 0)
	assert.Equal(t, time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC), next)
}

func TestNextRunExactBoundaryGoesToTomorrow(t *testing.T) {
	now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	next := nextRun(now, 2, 0)
	assert.Equal(t, time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC), next)
}

func TestNextRunMonthRollover(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	next := nextRun(now, 2, 30)
	assert.Equal(t, time.Date(2025, 2, 1, 2, 30, 0, 0, time.UTC), next)
}
