package annotate

import (
	"fmt"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"strconv"
)

// ClsEngine 分类: 在左上角列出得分最高的 N 个类别
type ClsEngine struct {
	base
	topN      int
	title     string
	titleFont *postproc.Font
	textFont  *postproc.Font

	titleColor postproc.Color
	textColor  postproc.Color
}

func newClsEngine(b base, cfg Config) (*ClsEngine, error) {
	// 标题字宽约为帧宽的 3%, 正文约 2%
	titleFont, err := postproc.GetFont(int(0.03 * float32(cfg.OutDataWidth)))
	if err != nil {
		return nil, err
	}
	textFont, err := postproc.GetFont(int(0.02 * float32(cfg.OutDataWidth)))
	if err != nil {
		return nil, err
	}
	return &ClsEngine{
		base:       b,
		topN:       cfg.TopN,
		title:      "Recognized Classes (Top " + strconv.Itoa(cfg.TopN) + "):",
		titleFont:  titleFont,
		textFont:   textFont,
		titleColor: postproc.NewColor(0, 255, 0),
		textColor:  postproc.NewColor(255, 255, 0),
	}, nil
}

// Annotate 取第一个输出的 TopN 并绘制类别名称
func (e *ClsEngine) Annotate(frame *postproc.Frame, outputs []*tensor.Tensor, res *Result) (*postproc.Frame, error) {
	t, err := firstOutput(outputs)
	if err != nil {
		return frame, err
	}
	top, err := topN(t, e.topN)
	if err != nil {
		return frame, fmt.Errorf("分类后处理失败: %w", err)
	}

	if res != nil {
		res.reset(e.geometry)
		for _, s := range top {
			id := s.index + e.offsets[0]
			label, _ := e.className(id)
			res.Classes = append(res.Classes, ClassResult{
				ClassID: id,
				Label:   label,
				Score:   s.score,
			})
		}
	}

	if frame != nil {
		e.render(frame, top)
	}
	return frame, nil
}

func (e *ClsEngine) render(frame *postproc.Frame, top []scored) {
	titleY := int(0.05 * float32(e.OutDataHeight))
	postproc.DrawText(frame, e.title, 5, titleY, e.titleFont, e.titleColor)

	rowY := titleY + e.titleFont.Height + 12
	for i, s := range top {
		id := s.index + e.offsets[0]
		if id < 0 {
			continue
		}
		// 不在数据集中的类别不显示
		name, ok := e.className(id)
		if !ok {
			continue
		}
		postproc.DrawText(frame, name, 5, rowY+i*e.textFont.Height, e.textFont, e.textColor)
	}
}
