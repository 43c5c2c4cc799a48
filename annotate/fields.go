package annotate

import (
	"fmt"
	"github.com/getcharzp/go-postproc/tensor"
)

// fieldReader 把多个输出张量的最后一维拼接起来，按位置读取字段
//
// 例如 boxes [1,100,4] + scores [1,100] + labels [1,100] 拼接后
// 每个条目有 6 个位置: x1,y1,x2,y2 在 0..3, score 在 4, label 在 5。
type fieldReader struct {
	tensors  []*tensor.Tensor
	lastDims []int
	cumDims  []int // 前 i+1 个张量的宽度之和
	ignore   int
	entries  int
}

// newFieldReader 按 resultIndices 的顺序组织输出并校验
//
// # Params:
//
//	outputs: 模型输出
//	resultIndices: 拼接顺序, 只使用前 len(outputs) 个
//	ignore: 跳过的位置, -1 表示不跳过
//	slots: 需要读取的位置, 超出拼接宽度时返回错误
func newFieldReader(outputs []*tensor.Tensor, resultIndices []int, ignore int, slots []int) (*fieldReader, error) {
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: 没有输出张量", ErrTensorMismatch)
	}
	n := min(len(outputs), len(resultIndices))
	r := &fieldReader{
		tensors:  make([]*tensor.Tensor, n),
		lastDims: make([]int, n),
		cumDims:  make([]int, n),
		ignore:   ignore,
	}

	for i, idx := range resultIndices[:n] {
		if idx >= len(outputs) || outputs[idx] == nil {
			return nil, fmt.Errorf("%w: resultIndices[%d] = %d, 共 %d 个输出", ErrTensorMismatch, i, idx, len(outputs))
		}
		t := outputs[idx]
		if !t.Type.Valid() {
			return nil, fmt.Errorf("%w: %v", tensor.ErrUnknownType, t.Type)
		}
		r.tensors[i] = t
	}

	// 只有一个条目时 [1,1,1,6] 会被压缩成一维，此时改用最后一个轴的长度
	total := r.layout(squeezedDim)
	if need := r.maxPosition(slots); need >= total {
		if literal := r.layout(literalDim); literal > need {
			total = literal
		} else {
			r.layout(squeezedDim)
		}
	}
	for i, t := range r.tensors {
		if r.lastDims[i] <= 0 {
			return nil, fmt.Errorf("%w: %s 最后一维为 0", ErrTensorMismatch, t)
		}
	}

	r.entries = int(r.tensors[0].NumElem()) / r.lastDims[0]
	for i, t := range r.tensors {
		if need := r.entries * r.lastDims[i]; int(t.NumElem()) < need {
			return nil, fmt.Errorf("%w: %s 需要 %d 个元素, 实际 %d", ErrTensorMismatch, t, need, t.NumElem())
		}
	}
	for _, s := range slots {
		if p := r.position(s); p >= total {
			return nil, fmt.Errorf("%w: 位置 %d 超出拼接宽度 %d", ErrTensorMismatch, s, total)
		}
	}
	return r, nil
}

// squeezedDim 忽略长度为 1 的维度后的最后一维
func squeezedDim(t *tensor.Tensor) int {
	return int(t.LastDim())
}

// literalDim 形状中最后一个轴的长度
func literalDim(t *tensor.Tensor) int {
	if t.Dim() == 0 {
		return 1
	}
	return int(t.Shape[t.Dim()-1])
}

// layout 按 dimOf 计算每个张量的宽度和累计宽度，返回拼接后的总宽度
func (r *fieldReader) layout(dimOf func(*tensor.Tensor) int) int {
	total := 0
	for i, t := range r.tensors {
		r.lastDims[i] = dimOf(t)
		total += r.lastDims[i]
		r.cumDims[i] = total
	}
	return total
}

// maxPosition slots 中跳过 ignore 之后最大的位置
func (r *fieldReader) maxPosition(slots []int) int {
	m := -1
	for _, s := range slots {
		m = max(m, r.position(s))
	}
	return m
}

// position 跳过 ignore 之后的实际位置
func (r *fieldReader) position(slot int) int {
	if r.ignore >= 0 && slot >= r.ignore {
		slot++
	}
	return slot
}

// Value 读取第 entry 个条目中 slot 位置的值
func (r *fieldReader) Value(entry, slot int) float32 {
	pos := r.position(slot)
	for i, cum := range r.cumDims {
		if pos < cum {
			start := cum - r.lastDims[i]
			return float32(r.tensors[i].Float(entry*r.lastDims[i] + pos - start))
		}
	}
	return 0
}

// Entries 条目数
func (r *fieldReader) Entries() int {
	return r.entries
}
