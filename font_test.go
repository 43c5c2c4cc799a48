package postproc

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func countBits(words []uint32) int {
	n := 0
	for _, w := range words {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

func TestDefaultFont(t *testing.T) {
	f := DefaultFont()
	require.Equal(t, 8, f.Width)
	require.Equal(t, 14, f.Height)
	require.Len(t, f.Glyph('A'), (8*14+31)/32)

	require.Nil(t, f.Glyph(' '))
	require.Nil(t, f.Glyph(127))
	require.Greater(t, countBits(f.Glyph('!')), 0)
	require.Greater(t, countBits(f.Glyph('W')), countBits(f.Glyph('.')))
	require.Equal(t, 3*f.Width, f.TextWidth("abc"))
}

func TestGetFont(t *testing.T) {
	small, err := GetFont(8)
	require.NoError(t, err)
	big, err := GetFont(24)
	require.NoError(t, err)

	require.Greater(t, big.Width, small.Width)
	require.Greater(t, big.Height, small.Height)
	require.InDelta(t, 24, big.Width, 4)
	require.Greater(t, countBits(big.Glyph('#')), 0)

	again, err := GetFont(24)
	require.NoError(t, err)
	require.Same(t, big, again)
}
