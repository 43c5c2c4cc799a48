package annotate

import (
	"fmt"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"image"
)

// DetEngine 目标检测: 画框和类别标签
type DetEngine struct {
	base
	formatter     [6]int
	ignoreIndex   int
	resultIndices []int
	scaleX        float32
	scaleY        float32

	font        *postproc.Font
	boxColor    postproc.Color
	textColor   postproc.Color
	textBGColor postproc.Color
}

func newDetEngine(b base, cfg Config) (*DetEngine, error) {
	font, err := postproc.GetFont(12)
	if err != nil {
		return nil, err
	}
	e := &DetEngine{
		base:          b,
		formatter:     cfg.Formatter,
		ignoreIndex:   cfg.IgnoreIndex,
		resultIndices: cfg.ResultIndices,
		font:          font,
		boxColor:      postproc.NewColor(20, 220, 20),
		textColor:     postproc.NewColor(0, 0, 0),
		textBGColor:   postproc.NewColor(0, 255, 0),
	}
	e.scaleX, e.scaleY = b.scale()
	return e, nil
}

// Annotate 解码检测结果
//
// 输出可以是一个 [1,1,N,6] 的张量，也可以是多个张量按 ResultIndices 拼接，
// Formatter 给出 x1,y1,x2,y2,label,score 在拼接后的位置。
func (e *DetEngine) Annotate(frame *postproc.Frame, outputs []*tensor.Tensor, res *Result) (*postproc.Frame, error) {
	r, err := newFieldReader(outputs, e.resultIndices, e.ignoreIndex, e.formatter[:])
	if err != nil {
		return frame, fmt.Errorf("检测后处理失败: %w", err)
	}
	if res != nil {
		res.reset(e.geometry)
	}

	for i := 0; i < r.Entries(); i++ {
		score := r.Value(i, e.formatter[FieldScore])
		if score < e.VizThreshold {
			continue
		}
		box := image.Rectangle{
			Min: image.Point{
				X: int(r.Value(i, e.formatter[FieldX1]) * e.scaleX),
				Y: int(r.Value(i, e.formatter[FieldY1]) * e.scaleY),
			},
			Max: image.Point{
				X: int(r.Value(i, e.formatter[FieldX2]) * e.scaleX),
				Y: int(r.Value(i, e.formatter[FieldY2]) * e.scaleY),
			},
		}
		id := e.classID(int(r.Value(i, e.formatter[FieldLabel])))
		name, _ := e.className(id)

		if frame != nil {
			e.drawBox(frame, box, name)
		}
		if res != nil {
			res.Detections = append(res.Detections, DetResult{
				Label:   name,
				ClassID: id,
				Score:   score,
				Box:     box,
			})
		}
	}
	return frame, nil
}

// drawBox 画检测框，并在框中心画带底色的标签
func (e *DetEngine) drawBox(frame *postproc.Frame, box image.Rectangle, name string) {
	postproc.DrawRect(frame, box.Min.X, box.Min.Y, box.Dx(), box.Dy(), e.boxColor, 2)

	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	postproc.DrawRect(frame, cx-5, cy-5, e.font.TextWidth(name)+10, e.font.Height+10, e.textBGColor, -1)
	postproc.DrawText(frame, name, cx, cy, e.font, e.textColor)
}
