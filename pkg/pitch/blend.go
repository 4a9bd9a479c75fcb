package pitch

// BlendedTarget returns the merge-weighted mean of pitches[:merged]. When
// every weight is zero it falls back to the unweighted mean, and to 0 when
// there is nothing to average.
//
// Merge-weight edits do not call this yet; the merged slot keeps the
// unweighted mean computed when the model was loaded.
func BlendedTarget(weights, pitches []float64, merged int) float64 {
	merged = min(merged, len(weights), len(pitches))
	if merged <= 0 {
		return 0
	}
	var weighted, simple, sum float64
	for i := range merged {
		weighted += weights[i] * pitches[i]
		simple += pitches[i]
		sum += weights[i]
	}
	if sum > 0 {
		return weighted / sum
	}
	return simple / float64(merged)
}

// Mean returns the unweighted mean of pitches, 0 when empty
func Mean(pitches []float64) float64 {
	if len(pitches) == 0 {
		return 0
	}
	var total float64
	for _, p := range pitches {
		total += p
	}
	return total / float64(len(pitches))
}
