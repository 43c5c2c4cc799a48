package postproc

// Color NV12 帧上的颜色 (BT.601 studio swing)
type Color struct {
	Y, U, V uint8
}

// NewColor 由 RGB 计算 YUV
func NewColor(r, g, b uint8) Color {
	R, G, B := int(r), int(g), int(b)
	return Color{
		Y: uint8(((66*R + 129*G + 25*B + 128) >> 8) + 16),
		U: uint8(((-38*R - 74*G + 112*B + 128) >> 8) + 128),
		V: uint8(((112*R - 94*G - 18*B + 128) >> 8) + 128),
	}
}

// ColorFromRGB 由 [3]uint8 形式的 RGB 计算 YUV
func ColorFromRGB(rgb [3]uint8) Color {
	return NewColor(rgb[0], rgb[1], rgb[2])
}

// ColorFromYUV 直接使用 YUV 分量
func ColorFromYUV(yuv [3]uint8) Color {
	return Color{Y: yuv[0], U: yuv[1], V: yuv[2]}
}

// RGBA 近似还原为 RGB，方便调试输出
func (c Color) RGBA() (r, g, b, a uint32) {
	y := (int(c.Y) - 16) * 298
	u := int(c.U) - 128
	v := int(c.V) - 128
	return clamp8((y+409*v+128)>>8) * 0x101,
		clamp8((y-100*u-208*v+128)>>8) * 0x101,
		clamp8((y+516*u+128)>>8) * 0x101,
		0xffff
}

func clamp8(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint32(v)
}

var (
	Black  = NewColor(0, 0, 0)
	White  = NewColor(255, 255, 255)
	Red    = NewColor(255, 0, 0)
	Green  = NewColor(0, 255, 0)
	Blue   = NewColor(0, 0, 255)
	Yellow = NewColor(255, 255, 0)

	// NeutralChroma 无色差的色度 (U=V=128)
	NeutralChroma = Color{Y: 128, U: 128, V: 128}
)
