package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoFalseNegatives(t *testing.T) {
	filter := NewFilterWithExpectedItems(1000, 0.01)

	for i := 0; i < 1000; i++ {
		filter.Add(fmt.Sprintf("like:42:user-%d", i))
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, filter.Contains(fmt.Sprintf("like:42:user-%d", i)))
	}
}

func TestFalsePositiveRateStaysReasonable(t *testing.T) {
	filter := NewFilterWithExpectedItems(1000, 0.01)

	for i := 0; i < 1000; i++ {
		filter.Add(fmt.Sprintf("member-%d", i))
	}

	falsePositives := 0
	const probes = 10000
	for i := 0; i < probes; i++ {
		if filter.Contains(fmt.Sprintf("absent-%d", i)) {
			falsePositives++
		}
	}

	// Sized for 1% but allow generous slack; the property under test is that
	// absent keys are overwhelmingly rejected.
	assert.Less(t, falsePositives, probes/20)
}

func TestClear(t *testing.T) {
	filter := NewFilter(1024, 3)

	filter.Add("like:7:alice")
	assert.True(t, filter.Contains("like:7:alice"))

	filter.Clear()
	assert.False(t, filter.Contains("like:7:alice"))
}

func TestEmptyFilterContainsNothing(t *testing.T) {
	filter := NewFilter(1024, 3)
	assert.False(t, filter.Contains("anything"))
}
