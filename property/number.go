package property

import "fmt"

// Number is an observable float64 constrained to a closed range, with a
// step size used by widgets for keyboard increments. Values outside the
// range are clamped, never rejected: a slider dragged past its end
// simply pins there.
type Number struct {
	*Property[float64]
	min  float64
	max  float64
	step float64
}

// NewNumber creates a ranged number property. The initial value is
// clamped into [min, max].
func NewNumber(initial, min, max, step float64) (*Number, error) {
	if min > max {
		return nil, fmt.Errorf("invalid range: min %v > max %v", min, max)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	n := &Number{
		Property: New(clamp(initial, min, max)),
		min:      min,
		max:      max,
		step:     step,
	}
	return n, nil
}

// Set clamps value into range and stores it.
func (n *Number) Set(value float64) {
	n.Property.Set(clamp(value, n.min, n.max))
}

// Increment adds one step, clamped.
func (n *Number) Increment() { n.Set(n.Get() + n.step) }

// Decrement subtracts one step, clamped.
func (n *Number) Decrement() { n.Set(n.Get() - n.step) }

// Min returns the lower bound.
func (n *Number) Min() float64 { return n.min }

// Max returns the upper bound.
func (n *Number) Max() float64 { return n.max }

// Step returns the keyboard increment.
func (n *Number) Step() float64 { return n.step }

// Normalized returns the value mapped into [0, 1] across the range.
func (n *Number) Normalized() float64 {
	if n.max == n.min {
		return 0
	}
	return (n.Get() - n.min) / (n.max - n.min)
}

// InRange reports whether value would survive clamping unchanged.
func (n *Number) InRange(value float64) bool {
	return value >= n.min && value <= n.max
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
