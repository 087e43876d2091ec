package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testStrKey string

func TestKeyCompare(t *testing.T) {
	require.Equal(t, int64(0), KeyCompare(1, 1))
	require.Equal(t, int64(-1), KeyCompare(1, 2))
	require.Equal(t, int64(1), KeyCompare(2, 1))

	require.Equal(t, int64(-1), KeyCompare(-1.5, 0.25))
	require.Equal(t, int64(1), KeyCompare(uint8('b'), uint8('a')))
	require.Equal(t, int64(-1), KeyCompare[testStrKey]("abc", "abd"))
	require.Equal(t, int64(0), KeyCompare("", ""))
}
