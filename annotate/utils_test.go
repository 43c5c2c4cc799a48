package annotate

import (
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

func TestTopN(t *testing.T) {
	data := []float32{0.1, 0.7, 0.3, 0.7, 0.05}

	top := TopN(data, 3)
	require.Equal(t, []Entry[float32]{{0.7, 1}, {0.7, 3}, {0.3, 2}}, top)

	all := TopN(data, len(data))
	require.Equal(t, []Entry[float32]{{0.7, 1}, {0.7, 3}, {0.3, 2}, {0.1, 0}, {0.05, 4}}, all)

	require.Len(t, TopN(data, 100), len(data))
	require.Empty(t, TopN(data, 0))
	require.Empty(t, TopN([]float32{}, 3))
}

func TestTopNMatchesFullSort(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		data := make([]int16, 1+r.IntN(64))
		for i := range data {
			// 取值范围小，制造大量相同的值
			data[i] = int16(r.IntN(9) - 4)
		}
		full := TopN(data, len(data))
		for i := 1; i < len(full); i++ {
			require.GreaterOrEqual(t, full[i-1].Value, full[i].Value)
		}

		n := 1 + r.IntN(len(data))
		top := TopN(data, n)
		require.Len(t, top, n)
		require.Equal(t, full[:n], top)
	}
}

func TestTopNEveryType(t *testing.T) {
	require.Equal(t, 2, TopN([]int8{-3, 1, 5}, 1)[0].Index)
	require.Equal(t, 0, TopN([]uint8{200, 1, 5}, 1)[0].Index)
	require.Equal(t, 1, TopN([]uint16{3, 60000, 5}, 1)[0].Index)
	require.Equal(t, 1, TopN([]int32{3, 9, 5}, 1)[0].Index)
	require.Equal(t, 2, TopN([]uint32{3, 9, 1 << 31}, 1)[0].Index)
	require.Equal(t, 0, TopN([]int64{1 << 40, 9, 5}, 1)[0].Index)
}
