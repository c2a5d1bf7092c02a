// Package safe provides overflow-checked integer conversion and arithmetic.
package safe

import (
	"fmt"
	"math"
)

// Unsigned64 is any integer type whose underlying type is uint64.
type Unsigned64 interface {
	~uint64
}

// Uint64 converts a signed or unsigned integer to uint64, rejecting negatives.
func Uint64[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Int64 converts a uint64 to int64, rejecting values above math.MaxInt64.
func Int64[T Unsigned64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// Add returns a+b or an error when the sum overflows.
func Add[T Unsigned64](a, b T) (T, error) {
	if uint64(a) > math.MaxUint64-uint64(b) {
		return 0, fmt.Errorf("add %d + %d overflows", a, b)
	}
	return a + b, nil
}

// Sub returns a-b or an error when b exceeds a.
func Sub[T Unsigned64](a, b T) (T, error) {
	if b > a {
		return 0, fmt.Errorf("sub %d - %d underflows", a, b)
	}
	return a - b, nil
}

// Sum adds all values, failing on the first overflow.
func Sum[T Unsigned64](values ...T) (T, error) {
	var total T
	for _, v := range values {
		var err error
		if total, err = Add(total, v); err != nil {
			return 0, err
		}
	}
	return total, nil
}
