package postproc

import (
	"fmt"
	"github.com/chewxy/math32"
	"image"
	"strconv"
)

// BarGraphConfig 柱状图参数
type BarGraphConfig struct {
	X, Y          int // 左上角 (数值标签所在行)
	Width, Height int // 柱体区域尺寸，奇数宽度会减一
	MaxValue      int
	Title         string // 画在柱体下方
	Unit          string // 数值后缀，例如 "%"

	TitleFont *Font
	ValueFont *Font

	TextColor Color
	FillColor Color
	BGColor   Color
}

// BarGraph 绑定在帧上某个区域的柱状图
//
//	  42%      <- Y
//	+-----+    <- graphY
//	|     |
//	|#####|
//	+-----+
//	 title
type BarGraph struct {
	frame  *Frame
	cfg    BarGraphConfig
	graphY int
	perVal float32
	labelW int             // 数值标签区域的最小宽度
	label  image.Rectangle // 上一次画出的数值标签
}

// NewBarGraph 校验位置并画出背景和标题
func NewBarGraph(f *Frame, cfg BarGraphConfig) (*BarGraph, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: 帧为空", ErrInvalidGeometry)
	}
	if cfg.TitleFont == nil || cfg.ValueFont == nil {
		return nil, fmt.Errorf("%w: 缺少字体", ErrInvalidGeometry)
	}
	cfg.Width &^= 1
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.MaxValue <= 0 {
		return nil, fmt.Errorf("%w: 尺寸 %dx%d, 最大值 %d", ErrInvalidGeometry, cfg.Width, cfg.Height, cfg.MaxValue)
	}
	if cfg.X < 0 || cfg.Y < 0 || cfg.X >= f.Width || cfg.Y >= f.Height {
		return nil, fmt.Errorf("%w: 起点 (%d,%d) 不在 %dx%d 帧内", ErrInvalidGeometry, cfg.X, cfg.Y, f.Width, f.Height)
	}

	g := &BarGraph{
		cfg:    cfg,
		graphY: cfg.Y + cfg.ValueFont.Height + 1,
		perVal: float32(cfg.Height) / float32(cfg.MaxValue),
		labelW: max(cfg.Width, cfg.ValueFont.TextWidth(strconv.Itoa(cfg.MaxValue)+cfg.Unit)),
	}
	g.Bind(f)
	return g, nil
}

// Bind 切换到新的帧并重画背景和标题
func (g *BarGraph) Bind(f *Frame) {
	g.frame = f
	g.label = image.Rectangle{}
	DrawRect(f, g.cfg.X, g.graphY, g.cfg.Width, g.cfg.Height, g.cfg.BGColor, -1)
	titleX := g.cfg.X + g.cfg.Width/2 - g.cfg.TitleFont.TextWidth(g.cfg.Title)/2
	DrawText(f, g.cfg.Title, titleX, g.graphY+g.cfg.Height+1, g.cfg.TitleFont, g.cfg.TextColor)
}

// Update 显示新的数值，超出 [0, MaxValue] 时截断
func (g *BarGraph) Update(value int) {
	label := strconv.Itoa(value) + g.cfg.Unit
	labelWidth := g.cfg.ValueFont.TextWidth(label)
	labelX := g.cfg.X + g.cfg.Width/2 - labelWidth/2

	// 先用背景色清除旧的数值
	cx := g.cfg.X + g.cfg.Width/2
	area := image.Rect(cx-g.labelW/2, g.cfg.Y, cx-g.labelW/2+g.labelW, g.cfg.Y+g.cfg.ValueFont.Height).Union(g.label)
	FillRegion(g.frame, area.Min.X, area.Min.Y, area.Dx(), area.Dy(), g.cfg.BGColor)
	DrawText(g.frame, label, labelX, g.cfg.Y, g.cfg.ValueFont, g.cfg.TextColor)
	g.label = image.Rect(labelX, g.cfg.Y, labelX+labelWidth, g.cfg.Y+g.cfg.ValueFont.Height)

	DrawRect(g.frame, g.cfg.X, g.graphY, g.cfg.Width, g.cfg.Height, g.cfg.BGColor, -1)
	value = min(max(value, 0), g.cfg.MaxValue)
	if value == 0 {
		return
	}
	fill := int(math32.Round(float32(value) * g.perVal))
	DrawRect(g.frame, g.cfg.X, g.graphY+g.cfg.Height-fill, g.cfg.Width, fill, g.cfg.FillColor, -1)
}

// Height 柱状图整体占用的高度 (数值 + 柱体 + 标题)
func (g *BarGraph) Height() int {
	return g.cfg.ValueFont.Height + 1 + g.cfg.Height + 1 + g.cfg.TitleFont.Height
}
