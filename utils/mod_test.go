package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 5, 5}, 5), "Should return the first match")
	require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
	require.Equal(t, -1, FindIndex(nil, 0))
}

func TestContains(t *testing.T) {
	require.True(t, Contains([]int{1, 2, 3}, 3))
	require.False(t, Contains([]int{}, 3))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(-2, 0, 6))
	require.Equal(t, 6, Clamp(9, 0, 6))
	require.Equal(t, 3, Clamp(3, 0, 6))
}
