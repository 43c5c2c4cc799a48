package annotate

import (
	"fmt"
	"github.com/chewxy/math32"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"slices"
)

// SegEngine 语义分割: 按类别给色度着色，亮度保持不变
type SegEngine struct {
	base
	alpha256 int
	colors   map[int]postproc.Color // 数据集中指定的颜色
}

func newSegEngine(b base, cfg Config) (*SegEngine, error) {
	e := &SegEngine{
		base:     b,
		alpha256: int(math32.Round(cfg.Alpha * 256)),
		colors:   make(map[int]postproc.Color),
	}
	for id, d := range cfg.Dataset {
		if len(d.RGBColor) == 3 {
			e.colors[id] = postproc.NewColor(d.RGBColor[0], d.RGBColor[1], d.RGBColor[2])
		}
	}
	return e, nil
}

type segFunc func(e *SegEngine, frame *postproc.Frame, t *tensor.Tensor, res *Result) error

// segTable 每种元素类型一个 blendSegMask 实例
var segTable = tensor.Table[segFunc]{
	tensor.Int8:    blendSegMask[int8],
	tensor.UInt8:   blendSegMask[uint8],
	tensor.Int16:   blendSegMask[int16],
	tensor.UInt16:  blendSegMask[uint16],
	tensor.Int32:   blendSegMask[int32],
	tensor.UInt32:  blendSegMask[uint32],
	tensor.Int64:   blendSegMask[int64],
	tensor.Float32: blendSegMask[float32],
}

// Annotate 第一个输出为 InDataWidth x InDataHeight 的类别图
func (e *SegEngine) Annotate(frame *postproc.Frame, outputs []*tensor.Tensor, res *Result) (*postproc.Frame, error) {
	t, err := firstOutput(outputs)
	if err != nil {
		return frame, err
	}
	if need := int64(e.InDataWidth) * int64(e.InDataHeight); t.NumElem() < need {
		return frame, fmt.Errorf("%w: %s 需要至少 %d 个元素", ErrTensorMismatch, t, need)
	}
	if frame != nil && (frame.Width != e.OutDataWidth || frame.Height != e.OutDataHeight) {
		return frame, fmt.Errorf("%w: 帧 %dx%d, 输出尺寸 %dx%d",
			ErrInvalidGeometry, frame.Width, frame.Height, e.OutDataWidth, e.OutDataHeight)
	}
	fn, ok := segTable.Lookup(t.Type)
	if !ok {
		return frame, fmt.Errorf("%w: %v", tensor.ErrUnknownType, t.Type)
	}

	if res != nil {
		res.reset(e.geometry)
	}
	if err = fn(e, frame, t, res); err != nil {
		return frame, fmt.Errorf("分割后处理失败: %w", err)
	}
	return frame, nil
}

// chroma 类别对应的颜色: 数据集颜色 > 默认配色 > 中性色度
func (e *SegEngine) chroma(classID int) postproc.Color {
	if c, ok := e.colors[classID]; ok {
		return c
	}
	c, _ := postproc.SegColor(classID)
	return c
}

// blendSegMask 对输出帧的每个色度采样点取最近的类别并混合
//
//	new = (old*alpha256 + class*(256-alpha256)) >> 8
func blendSegMask[T tensor.Element](e *SegEngine, frame *postproc.Frame, t *tensor.Tensor, res *Result) error {
	classes, err := tensor.Data[T](t)
	if err != nil {
		return err
	}

	inW, inH := e.InDataWidth, e.InDataHeight
	outW, outH := e.OutDataWidth, e.OutDataHeight
	a, sa := e.alpha256, 256-e.alpha256

	if res != nil {
		res.ClassIDs = slices.Grow(res.ClassIDs[:0], (outH/2)*((outW+1)/2))
	}
	for h := 0; h < outH/2; h++ {
		sh := (h << 1) * inH / outH
		row := classes[sh*inW : (sh+1)*inW]
		var uv []byte
		if frame != nil {
			uv = frame.UV[h*outW : (h+1)*outW]
		}
		for w := 0; w < outW; w += 2 {
			classID := int(row[w*inW/outW])
			if uv != nil {
				c := e.chroma(classID)
				uv[w] = uint8((int(uv[w])*a + int(c.U)*sa) >> 8)
				uv[w+1] = uint8((int(uv[w+1])*a + int(c.V)*sa) >> 8)
			}
			if res != nil {
				res.ClassIDs = append(res.ClassIDs, int32(classID))
			}
		}
	}
	return nil
}
