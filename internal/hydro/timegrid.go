package hydro

import "sort"

// UnifyTimeGrid combines the forcing time steps with the requested output times and the
// optional start and stop times into the grid the calculation runs on.
//
// Start and stop are inserted as exact boundary points, after which everything before start
// and after stop is dropped. An empty or single-point result is not an error here; callers
// validate the grid before it is used.
func UnifyTimeGrid(timeSteps, outputTimes []float64, start, stop *float64) []float64 {
	grid := append([]float64(nil), timeSteps...)

	if len(outputTimes) > 0 {
		grid = union(grid, outputTimes...)
	}

	if start != nil {
		grid = union(grid, *start)
		grid = keep(grid, func(t float64) bool { return t >= *start })
	}

	if stop != nil {
		grid = union(grid, *stop)
		grid = keep(grid, func(t float64) bool { return t <= *stop })
	}

	return grid
}

// union returns the sorted, deduplicated union of a and b
func union(a []float64, b ...float64) []float64 {
	merged := make([]float64, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return SortUnique(merged)
}

func keep(values []float64, pred func(float64) bool) []float64 {
	kept := values[:0]
	for _, v := range values {
		if pred(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// SortUnique sorts values in place and drops exact duplicates
func SortUnique(values []float64) []float64 {
	if len(values) == 0 {
		return values
	}
	sort.Float64s(values)

	unique := values[:1]
	for _, v := range values[1:] {
		if v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	return unique
}

// StrictlyIncreasing reports whether every value is greater than the one before it
func StrictlyIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			return false
		}
	}
	return true
}
