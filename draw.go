package postproc

import (
	"github.com/chewxy/math32"
)

// DrawPixel 绘制单个像素
//
// 写入亮度，同时写入该像素所属的色度对；坐标越界时不做任何事。
func DrawPixel(f *Frame, x, y int, c Color) {
	if f == nil || !f.In(x, y) {
		return
	}
	f.Y[y*f.Width+x] = c.Y
	i := f.uvIndex(x, y)
	f.UV[i] = c.U
	f.UV[i+1] = c.V
}

// FillRegion 填充矩形区域，超出帧的部分被裁剪
//
// # Params:
//
//	f: 目标帧
//	x, y: 左上角
//	w, h: 宽高
//	c: 颜色
func FillRegion(f *Frame, x, y, w, h int, c Color) {
	if f == nil || w <= 0 || h <= 0 {
		return
	}
	x1, y1 := max(x, 0), max(y, 0)
	x2, y2 := min(x+w, f.Width), min(y+h, f.Height)
	if x1 >= x2 || y1 >= y2 {
		return
	}

	// 覆盖到的色度对 [uv1, uv2)
	uv1 := x1 >> 1
	uv2 := ((x2 - 1) >> 1) + 1
	for row := y1; row < y2; row++ {
		yRow := f.Y[row*f.Width+x1 : row*f.Width+x2]
		for i := range yRow {
			yRow[i] = c.Y
		}
		uvRow := f.UV[(row>>1)*f.Width : (row>>1+1)*f.Width]
		for col := uv1; col < uv2; col++ {
			uvRow[col*2] = c.U
			uvRow[col*2+1] = c.V
		}
	}
}

// DrawLine Bresenham 画线，端点先被夹到帧内
//
// # Params:
//
//	f: 目标帧
//	x1, y1, x2, y2: 起止点
//	c: 颜色
//	thickness: 线宽，小于 1 按 1 处理
func DrawLine(f *Frame, x1, y1, x2, y2 int, c Color, thickness int) {
	if f == nil {
		return
	}
	thickness = max(thickness, 1)
	x1, x2 = clampInt(x1, 0, f.Width-1), clampInt(x2, 0, f.Width-1)
	y1, y2 = clampInt(y1, 0, f.Height-1), clampInt(y2, 0, f.Height-1)
	k0 := -thickness / 2
	k1 := k0 + thickness

	dx, dy := x2-x1, y2-y1
	dxAbs, dyAbs := abs(dx), abs(dy)
	sdx, sdy := sign(dx), sign(dy)
	px, py := x1, y1

	if dxAbs >= dyAbs {
		// 偏水平：每步沿 y 方向画 thickness 个点
		e := dxAbs >> 1
		for k := k0; k < k1; k++ {
			DrawPixel(f, px, py+k, c)
		}
		for i := 0; i < dxAbs; i++ {
			e += dyAbs
			if e >= dxAbs {
				e -= dxAbs
				py += sdy
			}
			px += sdx
			for k := k0; k < k1; k++ {
				DrawPixel(f, px, py+k, c)
			}
		}
		return
	}

	e := dyAbs >> 1
	for k := k0; k < k1; k++ {
		DrawPixel(f, px+k, py, c)
	}
	for i := 0; i < dyAbs; i++ {
		e += dxAbs
		if e >= dyAbs {
			e -= dyAbs
			px += sdx
		}
		py += sdy
		for k := k0; k < k1; k++ {
			DrawPixel(f, px+k, py, c)
		}
	}
}

// DrawRect 绘制矩形，thickness <= 0 时填充
func DrawRect(f *Frame, x, y, w, h int, c Color, thickness int) {
	if thickness <= 0 {
		FillRegion(f, x, y, w, h, c)
		return
	}
	FillRegion(f, x, y, w, thickness, c)
	// 底边多画 thickness，补齐右下角
	FillRegion(f, x, y+h, w+thickness, thickness, c)
	FillRegion(f, x, y, thickness, h, c)
	FillRegion(f, x+w, y, thickness, h, c)
}

// DrawCircle 中点画圆
//
// thickness > 0 时画半径 r±thickness/2 的圆环，否则画实心圆。
func DrawCircle(f *Frame, xc, yc, r int, c Color, thickness int) {
	if f == nil || r < 0 {
		return
	}
	outer, inner := r, 0
	if thickness > 0 {
		outer = r + thickness>>1
		inner = max(r-thickness>>1, 0)
	}

	xo, xi, y := outer, inner, 0
	errO, errI := 1-xo, 1-xi
	for xo >= y {
		wd := xo - xi + 1
		FillRegion(f, xc+xi, yc+y, wd, 1, c)
		FillRegion(f, xc+y, yc+xi, 1, wd, c)
		FillRegion(f, xc-xo, yc+y, wd, 1, c)
		FillRegion(f, xc-y, yc+xi, 1, wd, c)
		FillRegion(f, xc-xo, yc-y, wd, 1, c)
		FillRegion(f, xc-y, yc-xo, 1, wd, c)
		FillRegion(f, xc+xi, yc-y, wd, 1, c)
		FillRegion(f, xc+y, yc-xo, 1, wd, c)

		y++
		if errO < 0 {
			errO += 2*y + 1
		} else {
			xo--
			errO += 2 * (y - xo + 1)
		}

		// 内圆扫过 45° 之后贴着对角线走
		if y > inner {
			xi = y
		} else if errI < 0 {
			errI += 2*y + 1
		} else {
			xi--
			errI += 2 * (y - xi + 1)
		}
	}
}

// DrawText 绘制点阵文本
//
// 起点在第 0 列之前的字符和超出右边界的字符不绘制；
// 编码小于 33 的字符只占位不绘制。
func DrawText(f *Frame, text string, x, y int, font *Font, c Color) {
	if f == nil || font == nil || font.Width <= 0 || x >= f.Width || y >= f.Height {
		return
	}
	if x < 0 {
		skip := (-x + font.Width - 1) / font.Width
		if skip >= len(text) {
			return
		}
		text = text[skip:]
		x += skip * font.Width
	}
	if y < 0 {
		y = 0
	} else if y+font.Height >= f.Height {
		y = max(f.Height-font.Height-1, 0)
	}

	n := min(len(text), (f.Width-x)/font.Width)
	for ci := 0; ci < n; ci++ {
		if glyph := font.Glyph(text[ci]); glyph != nil {
			drawGlyph(f, glyph, x, y, font.Width, font.Height, c)
		}
		x += font.Width
	}
}

func drawGlyph(f *Frame, glyph []uint32, x, y, w, h int, c Color) {
	word := glyph[0]
	wi, bit := 0, 0
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if bit == 32 {
				wi++
				word = glyph[wi]
				bit = 0
			}
			if word>>bit&1 != 0 {
				DrawPixel(f, x+j, y+i, c)
			}
			bit++
		}
	}
}

// BlendImage 亮度平面加权混合: src = alpha*src + beta*dst + gamma
//
// 只处理两帧重叠的部分，结果写回 src，超出 [0,255] 时截断。
func BlendImage(src, dst *Frame, alpha, beta, gamma float32) {
	if src == nil || dst == nil {
		return
	}
	w := min(src.Width, dst.Width)
	h := min(src.Height, dst.Height)
	for row := 0; row < h; row++ {
		s := src.Y[row*src.Width : row*src.Width+w]
		d := dst.Y[row*dst.Width : row*dst.Width+w]
		j := 0
		for ; j+8 <= w; j += 8 {
			s[j] = blend8(s[j], d[j], alpha, beta, gamma)
			s[j+1] = blend8(s[j+1], d[j+1], alpha, beta, gamma)
			s[j+2] = blend8(s[j+2], d[j+2], alpha, beta, gamma)
			s[j+3] = blend8(s[j+3], d[j+3], alpha, beta, gamma)
			s[j+4] = blend8(s[j+4], d[j+4], alpha, beta, gamma)
			s[j+5] = blend8(s[j+5], d[j+5], alpha, beta, gamma)
			s[j+6] = blend8(s[j+6], d[j+6], alpha, beta, gamma)
			s[j+7] = blend8(s[j+7], d[j+7], alpha, beta, gamma)
		}
		for ; j < w; j++ {
			s[j] = blend8(s[j], d[j], alpha, beta, gamma)
		}
	}
}

func blend8(s, d uint8, alpha, beta, gamma float32) uint8 {
	v := alpha*float32(s) + beta*float32(d) + gamma
	return uint8(math32.Max(0, math32.Min(255, v)))
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
