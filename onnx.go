package postproc

import (
	"fmt"
	"github.com/getcharzp/go-postproc/tensor"
	ort "github.com/getcharzp/onnxruntime_purego"
)

// valueReaders 依次尝试的元素类型，检测模型最常见的 float32 在前
var valueReaders = []func(v *ort.Value, shape []int64) (*tensor.Tensor, error){
	valueTensor[float32],
	valueTensor[int64],
	valueTensor[int32],
	valueTensor[uint8],
	valueTensor[int8],
	valueTensor[int16],
	valueTensor[uint16],
	valueTensor[uint32],
}

func valueTensor[T tensor.Element](v *ort.Value, shape []int64) (*tensor.Tensor, error) {
	data, err := ort.GetTensorData[T](v)
	if err != nil {
		return nil, err
	}
	return tensor.New(shape, data)
}

// TensorFromValue 将 ONNX Runtime 的输出包装为张量视图
//
// 数据仍由 ort.Value 持有，调用方在用完张量之前不能 Destroy。
//
// # Params:
//
//	name: 输出名称，例如 "output0"
//	v: session.Run 返回的输出
func TensorFromValue(name string, v *ort.Value) (*tensor.Tensor, error) {
	if v == nil {
		return nil, fmt.Errorf("输出 %s 为空", name)
	}
	shape, err := v.GetShape()
	if err != nil {
		return nil, fmt.Errorf("获取输出形状失败: %w", err)
	}

	var lastErr error
	for _, read := range valueReaders {
		t, err := read(v, shape)
		if err != nil {
			lastErr = err
			continue
		}
		t.Name = name
		return t, nil
	}
	return nil, fmt.Errorf("获取输出数据失败: %w", lastErr)
}

// TensorsFromOutputs 按给定顺序转换 session.Run 的全部输出
func TensorsFromOutputs(outputs map[string]*ort.Value, names ...string) ([]*tensor.Tensor, error) {
	tensors := make([]*tensor.Tensor, 0, len(names))
	for _, name := range names {
		v, ok := outputs[name]
		if !ok {
			return nil, fmt.Errorf("缺少输出 %s", name)
		}
		t, err := TensorFromValue(name, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tensors = append(tensors, t)
	}
	return tensors, nil
}
