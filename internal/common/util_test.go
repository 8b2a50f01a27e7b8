package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZeroesContents(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for i := range b {
		require.Zero(t, b[i])
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	require.NotPanics(t, func() { WipeByteArray(nil) })
}
