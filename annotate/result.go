package annotate

import (
	"image"
)

// ClassResult 分类结果
type ClassResult struct {
	ClassID int // 加上 LabelOffsetMap[0] 之后的数据集类别ID
	Label   string
	Score   float32
}

// DetResult 目标检测结果
type DetResult struct {
	Label   string
	ClassID int
	Score   float32
	Box     image.Rectangle // 输出帧坐标, 保持模型给出的顺序 (x1,y1)-(x2,y2)
}

// KeyPoint 单个关键点
type KeyPoint struct {
	Index int     // 在模型输出中的序号
	Name  string  // 数据集中的关键点名称，没有时为空
	X, Y  int     // 输出帧坐标
	Score float32 // 可见性/置信度
}

// PoseResult 关键点检测结果
type PoseResult struct {
	Label     string
	ClassID   int
	Score     float32
	Box       image.Rectangle
	KeyPoints []KeyPoint // 置信度大于 0.5 的关键点
}

// Result 一次后处理的结构化结果
//
// 由调用方分配，每次调用都会清空后重新填充。
type Result struct {
	InputWidth    int
	InputHeight   int
	OutputWidth   int
	OutputHeight  int
	DisplayWidth  int
	DisplayHeight int

	Classes    []ClassResult
	Detections []DetResult
	ClassIDs   []int32 // 分割: 每个色度采样点一个类别ID, 行优先
	Poses      []PoseResult
}

// reset 清空上一次的结果，保留已分配的空间
func (r *Result) reset(g geometry) {
	r.InputWidth = g.InDataWidth
	r.InputHeight = g.InDataHeight
	r.OutputWidth = g.OutDataWidth
	r.OutputHeight = g.OutDataHeight
	r.DisplayWidth = g.DispWidth
	r.DisplayHeight = g.DispHeight
	r.Classes = r.Classes[:0]
	r.Detections = r.Detections[:0]
	r.ClassIDs = r.ClassIDs[:0]
	r.Poses = r.Poses[:0]
}
