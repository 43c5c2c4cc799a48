package annotate

import (
	"fmt"
	"github.com/cyclopcam/logs"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"github.com/up-zero/gotool/convertutil"
)

// Annotator 解码模型输出并绘制到 NV12 帧上
//
// 引擎创建后只读，不同的帧和结果可以在多个协程中并发调用。
type Annotator interface {
	// Annotate 处理一次模型输出
	//
	// # Params:
	//
	//	frame: 目标帧, 为 nil 时只解码不绘制
	//	outputs: 模型输出
	//	res: (可选) 结构化结果, 为 nil 时只绘制
	Annotate(frame *postproc.Frame, outputs []*tensor.Tensor, res *Result) (*postproc.Frame, error)

	// TaskType 任务类型
	TaskType() TaskType

	// Title 标题 "Model: <name>"
	Title() string
}

// geometry 各引擎共用的参数，从 Config 复制
type geometry struct {
	ModelName     string
	InDataWidth   int
	InDataHeight  int
	OutDataWidth  int
	OutDataHeight int
	DispWidth     int
	DispHeight    int
	VizThreshold  float32
	NormDetect    bool
}

// base 引擎公共部分
type base struct {
	geometry
	task    TaskType
	offsets map[int]int
	dataset map[int]DatasetInfo
	log     logs.Log
}

func newBase(cfg Config) (base, error) {
	b := base{
		task:    cfg.TaskType,
		offsets: cfg.LabelOffsetMap,
		dataset: cfg.Dataset,
		log:     cfg.Log,
	}
	if err := convertutil.CopyProperties(cfg, &b.geometry); err != nil {
		return b, fmt.Errorf("复制参数失败: %w", err)
	}
	return b, nil
}

func (b *base) TaskType() TaskType {
	return b.task
}

func (b *base) Title() string {
	return "Model: " + b.ModelName
}

// scale 模型坐标到输出帧坐标的比例
func (b *base) scale() (float32, float32) {
	if b.NormDetect {
		return float32(b.OutDataWidth), float32(b.OutDataHeight)
	}
	return float32(b.OutDataWidth) / float32(b.InDataWidth), float32(b.OutDataHeight) / float32(b.InDataHeight)
}

// classID 模型输出的类别 -> 数据集类别ID
func (b *base) classID(label int) int {
	if id, ok := b.offsets[label]; ok {
		return id
	}
	return b.offsets[0] + label
}

// className 数据集中的显示名称，不存在时返回 "UNDEFINED"
func (b *base) className(id int) (string, bool) {
	if d, ok := b.dataset[id]; ok {
		return d.DisplayName(), true
	}
	return undefinedLabel, false
}

// New 按任务类型创建引擎
//
// # Params:
//
//	cfg: 参数, 通常从 DefaultConfig 或 DefaultXxxConfig 开始修改
func New(cfg Config) (Annotator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	if cfg.Log == nil {
		log, err := logs.NewLog()
		if err != nil {
			return nil, fmt.Errorf("创建日志失败: %w", err)
		}
		cfg.Log = log
	}

	b, err := newBase(cfg)
	if err != nil {
		return nil, err
	}

	var a Annotator
	switch cfg.TaskType {
	case TaskClassification:
		a, err = newClsEngine(b, cfg)
	case TaskDetection:
		a, err = newDetEngine(b, cfg)
	case TaskSegmentation:
		a, err = newSegEngine(b, cfg)
	case TaskKeypoint:
		a, err = newPoseEngine(b, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, cfg.TaskType)
	}
	if err != nil {
		return nil, err
	}

	cfg.Log.Infof("创建 %s 引擎: %s", cfg.TaskType, cfg.ModelName)
	cfg.dump(cfg.Log)
	return a, nil
}
