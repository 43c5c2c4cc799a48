package annotate

import (
	"fmt"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"image"
	"sync"
)

const (
	poseFields     = 6 // x1,y1,x2,y2,score,label
	keyPointSize   = 3 // x,y,conf
	keyPointRadius = 7
)

// PoseEngine 关键点检测: 画框、类别、关键点和骨架
//
// 每行输出为 [x1,y1,x2,y2,score,label, k0x,k0y,k0conf, k1x,k1y,k1conf, ...]。
type PoseEngine struct {
	base
	scaleX float32
	scaleY float32

	font          *postproc.Font
	boxColor      postproc.Color
	textColor     postproc.Color
	keyPointColor postproc.Color
	skeletonColor postproc.Color

	// 使用默认 COCO 骨架时的配色
	classColors    []postproc.Color
	limbColors     []postproc.Color
	keyPointColors []postproc.Color

	warnOnce sync.Once
}

func newPoseEngine(b base, cfg Config) (*PoseEngine, error) {
	font, err := postproc.GetFont(12)
	if err != nil {
		return nil, err
	}
	e := &PoseEngine{
		base:          b,
		font:          font,
		boxColor:      postproc.NewColor(20, 220, 20),
		textColor:     postproc.NewColor(220, 20, 20),
		keyPointColor: postproc.NewColor(220, 20, 20),
		skeletonColor: postproc.NewColor(220, 20, 20),
	}
	e.scaleX, e.scaleY = b.scale()
	for _, rgb := range postproc.PoseClassPalette {
		e.classColors = append(e.classColors, postproc.ColorFromRGB(rgb))
	}
	for _, i := range postproc.PoseLimbColorIndex {
		e.limbColors = append(e.limbColors, postproc.ColorFromRGB(postproc.PosePalette[i]))
	}
	for _, i := range postproc.PoseKeyPointColorIndex {
		e.keyPointColors = append(e.keyPointColors, postproc.ColorFromRGB(postproc.PosePalette[i]))
	}
	return e, nil
}

// posePalette 一个检测结果使用的颜色
type posePalette struct {
	box, text postproc.Color
	keyPoints []postproc.Color // 为空或下标越界时使用 keyPoint
	keyPoint  postproc.Color
	limbs     []postproc.Color // 为空或下标越界时使用 limb
	limb      postproc.Color
}

// skeleton 类别的骨架和配色，数据集没有给出骨架时使用 COCO 骨架
func (e *PoseEngine) skeleton(classID int) ([][2]int, posePalette) {
	if d, ok := e.dataset[classID]; ok && len(d.Skeleton) > 0 {
		return d.Skeleton, posePalette{
			box:      e.boxColor,
			text:     e.textColor,
			keyPoint: e.keyPointColor,
			limb:     e.skeletonColor,
		}
	}
	c := e.classColors[(classID%len(e.classColors)+len(e.classColors))%len(e.classColors)]
	return defaultSkeleton, posePalette{
		box:       c,
		text:      c,
		keyPoints: e.keyPointColors,
		keyPoint:  e.keyPointColor,
		limbs:     e.limbColors,
		limb:      e.skeletonColor,
	}
}

// Annotate 第一个输出的最后两维为 (检测数, 每行字段数)
func (e *PoseEngine) Annotate(frame *postproc.Frame, outputs []*tensor.Tensor, res *Result) (*postproc.Frame, error) {
	t, err := firstOutput(outputs)
	if err != nil {
		return frame, err
	}
	if t.Dim() < 2 {
		return frame, fmt.Errorf("%w: %s 至少需要 2 维", ErrTensorMismatch, t)
	}
	rows := int(t.Shape[t.Dim()-2])
	fields := int(t.Shape[t.Dim()-1])
	if fields < poseFields {
		return frame, fmt.Errorf("%w: %s 每行至少 %d 个字段", ErrTensorMismatch, t, poseFields)
	}
	if int(t.NumElem()) < rows*fields {
		return frame, fmt.Errorf("%w: %s 元素不足", ErrTensorMismatch, t)
	}
	if !t.Type.Valid() {
		return frame, fmt.Errorf("%w: %v", tensor.ErrUnknownType, t.Type)
	}
	if res != nil {
		res.reset(e.geometry)
	}

	numKpts := (fields - poseFields) / keyPointSize
	for i := 0; i < rows; i++ {
		row := i * fields
		score := float32(t.Float(row + 4))
		if score <= e.VizThreshold {
			continue
		}

		box := image.Rectangle{
			Min: image.Point{
				X: int(float32(t.Float(row+0)) * e.scaleX),
				Y: int(float32(t.Float(row+1)) * e.scaleY),
			},
			Max: image.Point{
				X: int(float32(t.Float(row+2)) * e.scaleX),
				Y: int(float32(t.Float(row+3)) * e.scaleY),
			},
		}
		label := int(t.Float(row + 5))
		id := e.classID(label)
		name, _ := e.className(id)
		skeleton, palette := e.skeleton(id)
		e.checkSkeleton(skeleton, numKpts)
		names := e.dataset[id].Keypoints

		// 所有关键点，未达到阈值的也保留坐标用于判断骨架
		kpts := make([]KeyPoint, numKpts)
		for k := range kpts {
			off := row + poseFields + k*keyPointSize
			kpts[k] = KeyPoint{
				Index: k,
				X:     int(float32(t.Float(off)) * e.scaleX),
				Y:     int(float32(t.Float(off+1)) * e.scaleY),
				Score: float32(t.Float(off + 2)),
			}
			if k < len(names) {
				kpts[k].Name = names[k]
			}
		}

		if frame != nil {
			e.draw(frame, box, name, kpts, skeleton, palette)
		}
		if res != nil {
			visible := make([]KeyPoint, 0, numKpts)
			for _, kp := range kpts {
				if kp.Score > keyPointThreshold {
					visible = append(visible, kp)
				}
			}
			res.Poses = append(res.Poses, PoseResult{
				Label:     name,
				ClassID:   id,
				Score:     score,
				Box:       box,
				KeyPoints: visible,
			})
		}
	}
	return frame, nil
}

func (e *PoseEngine) draw(frame *postproc.Frame, box image.Rectangle, name string, kpts []KeyPoint, skeleton [][2]int, p posePalette) {
	postproc.DrawRect(frame, box.Min.X, box.Min.Y, box.Dx(), box.Dy(), p.box, 2)
	postproc.DrawText(frame, name, box.Min.X, box.Min.Y+15, e.font, p.text)

	for k, kp := range kpts {
		if kp.Score <= keyPointThreshold {
			continue
		}
		c := p.keyPoint
		if k < len(p.keyPoints) {
			c = p.keyPoints[k]
		}
		postproc.DrawCircle(frame, kp.X, kp.Y, keyPointRadius, c, -1)
	}

	for s, edge := range skeleton {
		a, b := edge[0]-1, edge[1]-1
		if !edgeInRange(edge, len(kpts)) {
			continue
		}
		if kpts[a].Score <= keyPointThreshold || kpts[b].Score <= keyPointThreshold {
			continue
		}
		c := p.limb
		if s < len(p.limbs) {
			c = p.limbs[s]
		}
		postproc.DrawLine(frame, kpts[a].X, kpts[a].Y, kpts[b].X, kpts[b].Y, c, 2)
	}
}

// checkSkeleton 骨架引用了不存在的关键点时记录一次警告
func (e *PoseEngine) checkSkeleton(skeleton [][2]int, numKpts int) {
	for _, edge := range skeleton {
		if !edgeInRange(edge, numKpts) {
			e.warnOnce.Do(func() {
				e.log.Warnf("骨架 %v 超出关键点个数 %d, 已跳过", edge, numKpts)
			})
			return
		}
	}
}

// edgeInRange 从 1 开始的两个端点都在 [1, numKpts] 内
func edgeInRange(edge [2]int, numKpts int) bool {
	return edge[0] >= 1 && edge[1] >= 1 && edge[0] <= numKpts && edge[1] <= numKpts
}
