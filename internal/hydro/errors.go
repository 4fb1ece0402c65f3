package hydro

import (
	"errors"
	"fmt"
)

var (
	// ErrGridTooShort is returned when a time grid has fewer than two points
	ErrGridTooShort = errors.New("time grid needs at least two time steps")

	// ErrNotIncreasing is returned when time steps do not strictly increase
	ErrNotIncreasing = errors.New("time steps must be strictly increasing")
)

// ShapeError reports an interval-valued series whose length does not match its time grid
type ShapeError struct {
	Quantity string
	Length   int
	Expected int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("length of %s (%d) should be exactly one less than the number of time steps (expected %d)",
		e.Quantity, e.Length, e.Expected)
}
