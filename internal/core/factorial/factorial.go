// Package factorial computes n! for inputs whose result fits in a uint64.
package factorial

import (
	"errors"
	"fmt"
)

// MaxInput is the largest n for which n! fits in a uint64.
const MaxInput = 20

var (
	ErrNegativeInput = errors.New("factorial of a negative number is undefined")
	ErrOverflow      = fmt.Errorf("factorial overflows uint64 for inputs above %d", MaxInput)
)

// table holds 0! through 20!.
var table = [MaxInput + 1]uint64{
	1,
	1,
	2,
	6,
	24,
	120,
	720,
	5040,
	40320,
	362880,
	3628800,
	39916800,
	479001600,
	6227020800,
	87178291200,
	1307674368000,
	20922789888000,
	355687428096000,
	6402373705728000,
	121645100408832000,
	2432902008176640000,
}

func check(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeInput, n)
	}
	if n > MaxInput {
		return fmt.Errorf("%w: %d", ErrOverflow, n)
	}
	return nil
}

// Iterative computes n! with a loop.
func Iterative(n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	result := uint64(1)
	for i := 2; i <= n; i++ {
		result *= uint64(i)
	}
	return result, nil
}

// Recursive computes n! from its recursive definition.
func Recursive(n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	return recurse(uint64(n)), nil
}

func recurse(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return n * recurse(n-1)
}

// Lookup returns n! from a table fixed at compile time.
func Lookup(n int) (uint64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	return table[n], nil
}
