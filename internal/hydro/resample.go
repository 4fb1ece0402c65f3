package hydro

import "fmt"

// ResampleSteps projects an interval-valued series onto a target grid.
//
// values[i] applies to [timeSteps[i], timeSteps[i+1]). The returned series has one value per
// target interval and holds the value of the source interval that contains the end of each
// target interval. Target intervals beyond the last source time step keep the last value.
func ResampleSteps(timeSteps, values, target []float64) ([]float64, error) {
	if len(timeSteps) < 2 {
		return nil, fmt.Errorf("source grid: %w", ErrGridTooShort)
	}
	if len(target) < 2 {
		return nil, fmt.Errorf("target grid: %w", ErrGridTooShort)
	}
	if len(values) != len(timeSteps)-1 {
		return nil, &ShapeError{Quantity: "values", Length: len(values), Expected: len(timeSteps) - 1}
	}

	resampled := make([]float64, 0, len(target)-1)

	// Both cursors only move forward, so this is a single pass over both grids
	i, j := 1, 1
	for j < len(target) {
		if target[j] > timeSteps[i] && i < len(timeSteps)-1 {
			i++
			continue
		}
		resampled = append(resampled, values[i-1])
		j++
	}

	return resampled, nil
}
