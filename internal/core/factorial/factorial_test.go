package factorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterative_SmallInputs(t *testing.T) {
	cases := map[int]uint64{
		0:  1,
		1:  1,
		2:  2,
		3:  6,
		5:  120,
		10: 3628800,
		12: 479001600,
	}
	for n, want := range cases {
		got, err := Iterative(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, "factorial(%d)", n)
	}
}

func TestVariantsAgree(t *testing.T) {
	for n := 0; n <= MaxInput; n++ {
		it, err := Iterative(n)
		require.NoError(t, err)
		rec, err := Recursive(n)
		require.NoError(t, err)
		lk, err := Lookup(n)
		require.NoError(t, err)

		assert.Equal(t, it, rec, "recursive disagrees at %d", n)
		assert.Equal(t, it, lk, "lookup disagrees at %d", n)
	}
}

func TestMaxInputIsLargest(t *testing.T) {
	got, err := Iterative(MaxInput)
	require.NoError(t, err)
	assert.Equal(t, uint64(2432902008176640000), got)

	_, err = Iterative(MaxInput + 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestOutOfRange(t *testing.T) {
	variants := map[string]func(int) (uint64, error){
		"iterative": Iterative,
		"recursive": Recursive,
		"lookup":    Lookup,
	}
	for name, fn := range variants {
		t.Run(name, func(t *testing.T) {
			_, err := fn(-1)
			assert.ErrorIs(t, err, ErrNegativeInput)

			_, err = fn(21)
			assert.ErrorIs(t, err, ErrOverflow)

			v, err := fn(0)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), v)
		})
	}
}
