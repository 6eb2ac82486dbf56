// internal/services/ids_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextSequentialIDFirstAllocation(t *testing.T) {
	assert.Equal(t, "ORD-001", NextSequentialID("ORD", "", time.Now()))
	assert.Equal(t, "TC-001", NextSequentialID("TC", "", time.Now()))
}

func TestNextSequentialIDIncrements(t *testing.T) {
	assert.Equal(t, "ORD-002", NextSequentialID("ORD", "ORD-001", time.Now()))
	assert.Equal(t, "ORD-100", NextSequentialID("ORD", "ORD-099", time.Now()))
	assert.Equal(t, "TC-043", NextSequentialID("TC", "TC-042", time.Now()))
}

func TestNextSequentialIDPreservesWiderPadding(t *testing.T) {
	assert.Equal(t, "ORD-00010", NextSequentialID("ORD", "ORD-00009", time.Now()))
	assert.Equal(t, "ORD-1000", NextSequentialID("ORD", "ORD-0999", time.Now()))
}

func TestNextSequentialIDGrowsPastPadding(t *testing.T) {
	assert.Equal(t, "ORD-1000", NextSequentialID("ORD", "ORD-999", time.Now()))
}

func TestNextSequentialIDTimestampFallback(t *testing.T) {
	now := time.Now()
	expected := fmt.Sprintf("ORD-%d", now.Unix())

	// legacy identifier that does not match the shape
	assert.Equal(t, expected, NextSequentialID("ORD", "legacy-id", now))

	// prefix mismatch also falls back
	assert.Equal(t, expected, NextSequentialID("ORD", "TC-003", now))
}

func TestNextSequentialIDMonotonic(t *testing.T) {
	id := ""
	var prev int
	for i := 0; i < 50; i++ {
		id = NextSequentialID("ORD", id, time.Now())

		var n int
		_, err := fmt.Sscanf(id, "ORD-%d", &n)
		assert.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}
