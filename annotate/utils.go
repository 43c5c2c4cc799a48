package annotate

import (
	"cmp"
	"fmt"
	"github.com/getcharzp/go-postproc/tensor"
	"slices"
)

const (
	undefinedLabel = "UNDEFINED"

	// 关键点置信度阈值
	keyPointThreshold = 0.5
)

// defaultSkeleton COCO 17 个关键点的骨架连接, 下标从 1 开始
var defaultSkeleton = [][2]int{
	{16, 14}, {14, 12}, {17, 15}, {15, 13}, // 腿
	{12, 13}, {6, 12}, {7, 13}, // 躯干
	{6, 7}, {6, 8}, {7, 9}, {8, 10}, {9, 11}, // 臂/肩
	{2, 3}, {1, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 6}, {5, 7}, // 面部
}

// Entry TopN 的一项
type Entry[T tensor.Element] struct {
	Value T
	Index int
}

// compareEntry 按值降序，值相同时下标小的在前
func compareEntry[T tensor.Element](a, b Entry[T]) int {
	switch {
	case a.Value > b.Value:
		return -1
	case a.Value < b.Value:
		return 1
	}
	return cmp.Compare(a.Index, b.Index)
}

// TopN 取出值最大的 n 项
//
// 结果按值降序，值相同时下标小的在前；n 大于 len(data) 时取全部。
//
// # Params:
//
//	data: 原始得分
//	n: 需要的个数
func TopN[T tensor.Element](data []T, n int) []Entry[T] {
	n = min(n, len(data))
	if n <= 0 {
		return nil
	}

	if n == len(data) {
		all := make([]Entry[T], len(data))
		for i, v := range data {
			all[i] = Entry[T]{Value: v, Index: i}
		}
		slices.SortFunc(all, compareEntry[T])
		return all
	}

	top := make([]Entry[T], n)
	for i := 0; i < n; i++ {
		top[i] = Entry[T]{Value: data[i], Index: i}
	}
	slices.SortFunc(top, compareEntry[T])
	for i := n; i < len(data); i++ {
		if data[i] <= top[n-1].Value {
			continue
		}
		// 替换末尾后向前插入
		j := n - 1
		top[j] = Entry[T]{Value: data[i], Index: i}
		for ; j > 0 && compareEntry(top[j], top[j-1]) < 0; j-- {
			top[j], top[j-1] = top[j-1], top[j]
		}
	}
	return top
}

// scored 与元素类型无关的 TopN 结果
type scored struct {
	score float32
	index int
}

type topNFunc func(t *tensor.Tensor, n int) ([]scored, error)

// topNTable 每种元素类型一个 TopN 实例
var topNTable = tensor.Table[topNFunc]{
	tensor.Int8:    topNOf[int8],
	tensor.UInt8:   topNOf[uint8],
	tensor.Int16:   topNOf[int16],
	tensor.UInt16:  topNOf[uint16],
	tensor.Int32:   topNOf[int32],
	tensor.UInt32:  topNOf[uint32],
	tensor.Int64:   topNOf[int64],
	tensor.Float32: topNOf[float32],
}

func topNOf[T tensor.Element](t *tensor.Tensor, n int) ([]scored, error) {
	data, err := tensor.Data[T](t)
	if err != nil {
		return nil, err
	}
	top := TopN(data, n)
	out := make([]scored, len(top))
	for i, e := range top {
		out[i] = scored{score: float32(e.Value), index: e.Index}
	}
	return out, nil
}

// topN 按张量的元素类型选择 TopN 实例
func topN(t *tensor.Tensor, n int) ([]scored, error) {
	fn, ok := topNTable.Lookup(t.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %v", tensor.ErrUnknownType, t.Type)
	}
	return fn(t, n)
}

// firstOutput 取第一个输出张量
func firstOutput(outputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if len(outputs) == 0 || outputs[0] == nil {
		return nil, fmt.Errorf("%w: 没有输出张量", ErrTensorMismatch)
	}
	return outputs[0], nil
}
