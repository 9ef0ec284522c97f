package pool

import "math"

const (
	// defaultStrongCapacity is the floor the default policy never shrinks
	// below, so a baseline of reuse survives idle periods.
	defaultStrongCapacity = 5

	// scaleFactor sizes the strong tier relative to the active-object count
	// when the capacity re-anchors.
	scaleFactor = 0.2

	// minCapacityRatio and maxCapacityRatio bound the healthy band of
	// capacity over active count; outside it the capacity re-anchors.
	minCapacityRatio = 0.1
	maxCapacityRatio = 0.5
)

// DefaultScaler is the reference scaling policy. It keeps the strong tier
// proportional to recent concurrent usage, re-anchoring to 20% of the active
// count whenever the current capacity drifts outside 10-50% of it.
func DefaultScaler(numActive, curMaxStrong, numStrongPooled, numWeakPooled, numGC int) int {
	if numActive == 0 {
		return defaultStrongCapacity
	}

	ratio := float64(curMaxStrong) / float64(numActive)
	if ratio < minCapacityRatio || ratio > maxCapacityRatio {
		return max(int(math.Ceil(float64(numActive)*scaleFactor)), defaultStrongCapacity)
	}

	return max(curMaxStrong, defaultStrongCapacity)
}
