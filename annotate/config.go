package annotate

import (
	"errors"
	"fmt"
	"github.com/cyclopcam/logs"
	"github.com/getcharzp/go-postproc"
	"github.com/getcharzp/go-postproc/tensor"
	"maps"
	"slices"
)

var (
	ErrUnknownTask    = errors.New("未知的任务类型")
	ErrInvalidConfig  = errors.New("配置无效")
	ErrTensorMismatch = errors.New("输出张量与配置不匹配")

	ErrInvalidGeometry = postproc.ErrInvalidGeometry
	ErrTypeMismatch    = tensor.ErrTypeMismatch
)

// TaskType 任务类型
type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskDetection      TaskType = "detection"
	TaskSegmentation   TaskType = "segmentation"
	TaskKeypoint       TaskType = "keypoint_detection"
)

// Formatter 中各字段的位置
const (
	FieldX1 = iota
	FieldY1
	FieldX2
	FieldY2
	FieldLabel
	FieldScore
)

// DatasetInfo 数据集中的一个类别
type DatasetInfo struct {
	ID            int
	SuperCategory string
	Name          string
	RGBColor      []uint8  // (可选) 分割时使用的颜色, R,G,B
	Keypoints     []string // (可选) 关键点名称
	Skeleton      [][2]int // (可选) 骨架连接, 关键点下标从 1 开始
}

// DisplayName 显示名称 "supercategory/name"
func (d DatasetInfo) DisplayName() string {
	if d.SuperCategory == "" {
		return d.Name
	}
	return d.SuperCategory + "/" + d.Name
}

// Config 后处理的初始化参数
type Config struct {
	ModelName string
	TaskType  TaskType

	// 分辨率
	InDataWidth   int // 模型输入宽度 (默认 1280)
	InDataHeight  int // 模型输入高度 (默认 720)
	OutDataWidth  int // 绘制帧宽度 (默认 1280)
	OutDataHeight int // 绘制帧高度 (默认 720)
	DispWidth     int // 显示宽度 (默认 1920)
	DispHeight    int // 显示高度 (默认 1080)

	// 后处理参数
	VizThreshold float32 // 显示阈值 (默认 0.5)
	Alpha        float32 // 分割原图所占比例 (默认 0.5)
	TopN         int     // 分类显示的类别数 (默认 5)
	NormDetect   bool    // 检测坐标是否归一化到 [0,1]

	// LabelOffsetMap 模型输出的类别 -> 数据集类别ID
	//	存在该键时直接映射，否则为 LabelOffsetMap[0] + 类别
	LabelOffsetMap map[int]int
	// Formatter x1,y1,x2,y2,label,score 在拼接后的输出中的位置
	Formatter [6]int
	// IgnoreIndex 拼接后的输出中需要跳过的位置, -1 表示不跳过
	IgnoreIndex int
	// ResultIndices 检测输出张量的拼接顺序
	ResultIndices []int

	Dataset map[int]DatasetInfo

	// (可选) 日志, 默认 logs.NewLog()
	Log logs.Log
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		InDataWidth:    1280,
		InDataHeight:   720,
		OutDataWidth:   1280,
		OutDataHeight:  720,
		DispWidth:      1920,
		DispHeight:     1080,
		VizThreshold:   0.5,
		Alpha:          0.5,
		TopN:           5,
		LabelOffsetMap: map[int]int{0: 0},
		Formatter:      [6]int{0, 1, 2, 3, 4, 5},
		IgnoreIndex:    -1,
		ResultIndices:  []int{0, 1, 2, 3},
	}
}

// DefaultClsConfig 分类的默认配置
func DefaultClsConfig() Config {
	cfg := DefaultConfig()
	cfg.TaskType = TaskClassification
	return cfg
}

// DefaultDetConfig 检测的默认配置
func DefaultDetConfig() Config {
	cfg := DefaultConfig()
	cfg.TaskType = TaskDetection
	return cfg
}

// DefaultSegConfig 分割的默认配置
func DefaultSegConfig() Config {
	cfg := DefaultConfig()
	cfg.TaskType = TaskSegmentation
	return cfg
}

// DefaultPoseConfig 关键点检测的默认配置
func DefaultPoseConfig() Config {
	cfg := DefaultConfig()
	cfg.TaskType = TaskKeypoint
	return cfg
}

// SetFormatter 设置字段位置
//
// # Params:
//
//	src: 2 个值时只设置 label,score；
//	     4 个或 6 个值时从 x1 开始依次覆盖
func (c *Config) SetFormatter(src ...int) error {
	switch len(src) {
	case 2:
		c.Formatter[FieldLabel] = src[0]
		c.Formatter[FieldScore] = src[1]
	case 4, 6:
		copy(c.Formatter[:], src)
	default:
		return fmt.Errorf("%w: formatter 需要 2、4 或 6 个值，实际 %d", ErrInvalidConfig, len(src))
	}
	return nil
}

// SetLabelOffset 所有类别使用同一个偏移
func (c *Config) SetLabelOffset(offset int) {
	c.LabelOffsetMap = map[int]int{0: offset}
}

// Validate 检查参数
func (c *Config) Validate() error {
	if c.InDataWidth <= 0 || c.InDataHeight <= 0 {
		return fmt.Errorf("%w: 输入尺寸 %dx%d", ErrInvalidConfig, c.InDataWidth, c.InDataHeight)
	}
	if c.OutDataWidth <= 0 || c.OutDataHeight <= 0 {
		return fmt.Errorf("%w: 输出尺寸 %dx%d", ErrInvalidConfig, c.OutDataWidth, c.OutDataHeight)
	}
	if c.DispWidth <= 0 || c.DispHeight <= 0 {
		return fmt.Errorf("%w: 显示尺寸 %dx%d", ErrInvalidConfig, c.DispWidth, c.DispHeight)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("%w: alpha %v 不在 [0,1]", ErrInvalidConfig, c.Alpha)
	}
	if _, ok := c.LabelOffsetMap[0]; !ok {
		return fmt.Errorf("%w: LabelOffsetMap 缺少键 0", ErrInvalidConfig)
	}
	for i, v := range c.Formatter {
		if v < 0 {
			return fmt.Errorf("%w: formatter[%d] = %d", ErrInvalidConfig, i, v)
		}
	}
	if c.IgnoreIndex < -1 {
		return fmt.Errorf("%w: ignoreIndex %d", ErrInvalidConfig, c.IgnoreIndex)
	}
	for _, v := range c.ResultIndices {
		if v < 0 {
			return fmt.Errorf("%w: resultIndices %v", ErrInvalidConfig, c.ResultIndices)
		}
	}

	switch c.TaskType {
	case TaskClassification:
		if c.TopN <= 0 {
			return fmt.Errorf("%w: topN %d", ErrInvalidConfig, c.TopN)
		}
	case TaskDetection:
		if len(c.ResultIndices) == 0 {
			return fmt.Errorf("%w: 缺少 resultIndices", ErrInvalidConfig)
		}
	}
	for id, d := range c.Dataset {
		if d.RGBColor != nil && len(d.RGBColor) != 3 {
			return fmt.Errorf("%w: 类别 %d 的颜色需要 3 个值", ErrInvalidConfig, id)
		}
	}
	return nil
}

// clone 复制 map 和切片，引擎创建后不受调用方修改影响
func (c Config) clone() Config {
	c.LabelOffsetMap = maps.Clone(c.LabelOffsetMap)
	c.ResultIndices = slices.Clone(c.ResultIndices)
	c.Dataset = maps.Clone(c.Dataset)
	return c
}

// dump 以 Debug 级别输出配置
func (c *Config) dump(log logs.Log) {
	log.Debugf("ModelName      = %s", c.ModelName)
	log.Debugf("TaskType       = %s", c.TaskType)
	log.Debugf("InData         = %dx%d", c.InDataWidth, c.InDataHeight)
	log.Debugf("OutData        = %dx%d", c.OutDataWidth, c.OutDataHeight)
	log.Debugf("Disp           = %dx%d", c.DispWidth, c.DispHeight)
	log.Debugf("VizThreshold   = %f", c.VizThreshold)
	log.Debugf("Alpha          = %f", c.Alpha)
	log.Debugf("TopN           = %d", c.TopN)
	log.Debugf("NormDetect     = %v", c.NormDetect)
	log.Debugf("LabelOffsetMap = %v", c.LabelOffsetMap)
	log.Debugf("Formatter      = %v", c.Formatter)
	log.Debugf("IgnoreIndex    = %d", c.IgnoreIndex)
	log.Debugf("ResultIndices  = %v", c.ResultIndices)
	log.Debugf("Dataset        = %d 个类别", len(c.Dataset))
}
