package postproc

import (
	"github.com/getcharzp/go-postproc/tensor"
	ort "github.com/getcharzp/onnxruntime_purego"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
)

// newTestOrtEngine 加载 ONNX Runtime 动态库，找不到时跳过测试
func newTestOrtEngine(t *testing.T) {
	path := os.Getenv("ONNXRUNTIME_LIB")
	if path == "" {
		path = ort.DefaultLibraryPath()
	}
	engine, err := ort.NewEngine(path)
	if err != nil {
		t.Skipf("没有 ONNX Runtime 动态库 (%s): %v", path, err)
	}
	t.Cleanup(engine.Destroy)
}

func TestTensorsFromOutputsMissing(t *testing.T) {
	_, err := TensorsFromOutputs(map[string]*ort.Value{}, "output0")
	require.ErrorContains(t, err, "缺少输出 output0")

	_, err = TensorFromValue("output0", nil)
	require.Error(t, err)
}

func TestTensorFromValue(t *testing.T) {
	newTestOrtEngine(t)

	boxes, err := ort.NewTensor([]int64{1, 2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	defer boxes.Destroy()
	labels, err := ort.NewTensor([]int64{1, 2}, []int64{3, 9})
	require.NoError(t, err)
	defer labels.Destroy()

	outputs := map[string]*ort.Value{"boxes": boxes, "labels": labels}
	ts, err := TensorsFromOutputs(outputs, "labels", "boxes")
	require.NoError(t, err)
	require.Len(t, ts, 2)

	require.Equal(t, "labels", ts[0].Name)
	require.Equal(t, tensor.Int64, ts[0].Type)
	require.Equal(t, []int64{1, 2}, ts[0].Shape)
	require.Equal(t, int64(9), ts[0].Int(1))

	require.Equal(t, "boxes", ts[1].Name)
	require.Equal(t, tensor.Float32, ts[1].Type)
	require.Equal(t, int64(4), ts[1].LastDim())
	require.Equal(t, 7.0, ts[1].Float(6))
}
