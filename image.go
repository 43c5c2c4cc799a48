package postproc

import (
	"fmt"
	"github.com/up-zero/gotool/imageutil"
	"image"
)

// FrameFromImage 缩放到 width x height 并转换为 NV12
//
// 色度取每个 2x2 块左上角像素的颜色。
func FrameFromImage(img image.Image, width, height int) (*Frame, error) {
	f, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}

	src := img
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		src = imageutil.Resize(img, width, height)
	}
	o := src.Bounds().Min
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(o.X+x, o.Y+y).RGBA()
			c := NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			f.Y[y*width+x] = c.Y
			if x&1 == 0 && y&1 == 0 {
				i := f.uvIndex(x, y)
				f.UV[i] = c.U
				f.UV[i+1] = c.V
			}
		}
	}
	return f, nil
}

// SaveFrame 保存为图片文件，格式由扩展名决定
//
// # Params:
//
//	path: 文件路径
//	f: 帧
//	quality: jpeg 质量
func SaveFrame(path string, f *Frame, quality int) error {
	if f == nil {
		return fmt.Errorf("%w: 帧为空", ErrInvalidFrame)
	}
	if err := imageutil.Save(path, f.Image(), quality); err != nil {
		return fmt.Errorf("保存图片失败: %w", err)
	}
	return nil
}
