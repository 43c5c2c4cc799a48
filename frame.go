package postproc

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrInvalidFrame    = errors.New("非法的 NV12 帧")
	ErrInvalidGeometry = errors.New("非法的绘制区域")
)

// Frame NV12 帧视图
//
// Y 平面 Width*Height 字节，紧随其后是 UV 交错平面 Width*Height/2 字节，
// 色度在水平和垂直方向都是亮度的一半分辨率，每行 Width/2 对 (U, V)。
// Frame 不拥有内存，所有绘制函数都是原地修改。
type Frame struct {
	Width  int
	Height int
	Y      []byte
	UV     []byte
}

// FrameSize 指定分辨率下 NV12 缓冲区的字节数
func FrameSize(width, height int) int {
	return width * height * 3 / 2
}

// NewFrame 分配一块新的 NV12 缓冲区
func NewFrame(width, height int) (*Frame, error) {
	return FrameFromBuffer(make([]byte, FrameSize(max(width, 0), max(height, 0))), width, height)
}

// FrameFromBuffer 将调用方的缓冲区包装为 Frame
//
// # Params:
//
//	buf: NV12 数据，至少 width*height*3/2 字节
//	width, height: 帧尺寸，必须为正偶数
func FrameFromBuffer(buf []byte, width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 || width&1 != 0 || height&1 != 0 {
		return nil, fmt.Errorf("%w: 尺寸 %dx%d 必须为正偶数", ErrInvalidFrame, width, height)
	}
	size := FrameSize(width, height)
	if len(buf) < size {
		return nil, fmt.Errorf("%w: 需要 %d 字节，实际 %d", ErrInvalidFrame, size, len(buf))
	}
	ySize := width * height
	return &Frame{
		Width:  width,
		Height: height,
		Y:      buf[:ySize:ySize],
		UV:     buf[ySize:size:size],
	}, nil
}

// Bounds 帧的矩形范围
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// In 判断坐标是否在帧内
func (f *Frame) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// uvIndex (x, y) 所属色度对在 UV 平面中的偏移
func (f *Frame) uvIndex(x, y int) int {
	return (y>>1)*f.Width + (x>>1)<<1
}

// Pixel 读取 (x, y) 的亮度和所属色度对
func (f *Frame) Pixel(x, y int) (Color, bool) {
	if !f.In(x, y) {
		return Color{}, false
	}
	i := f.uvIndex(x, y)
	return Color{Y: f.Y[y*f.Width+x], U: f.UV[i], V: f.UV[i+1]}, true
}

// Fill 用单一颜色填满整帧
func (f *Frame) Fill(c Color) {
	for i := range f.Y {
		f.Y[i] = c.Y
	}
	for i := 0; i+1 < len(f.UV); i += 2 {
		f.UV[i] = c.U
		f.UV[i+1] = c.V
	}
}

// Clone 复制一份独立内存的帧
func (f *Frame) Clone() *Frame {
	buf := make([]byte, FrameSize(f.Width, f.Height))
	copy(buf, f.Y)
	copy(buf[len(f.Y):], f.UV)
	c, _ := FrameFromBuffer(buf, f.Width, f.Height)
	return c
}

// Image 转换为 4:2:0 的 image.YCbCr (拷贝数据)
func (f *Frame) Image() *image.YCbCr {
	img := image.NewYCbCr(f.Bounds(), image.YCbCrSubsampleRatio420)
	copy(img.Y, f.Y)
	cw := f.Width / 2
	for cy := 0; cy < f.Height/2; cy++ {
		row := f.UV[cy*f.Width : (cy+1)*f.Width]
		for cx := 0; cx < cw; cx++ {
			img.Cb[cy*img.CStride+cx] = row[cx*2]
			img.Cr[cy*img.CStride+cx] = row[cx*2+1]
		}
	}
	return img
}
