package postproc

import (
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func newTestFrame(t *testing.T, w, h int) *Frame {
	f, err := NewFrame(w, h)
	require.NoError(t, err)
	f.Fill(NeutralChroma)
	return f
}

func TestDrawPixel(t *testing.T) {
	f := newTestFrame(t, 16, 8)
	c := NewColor(200, 30, 90)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g := f.Clone()
			DrawPixel(g, x, y, c)
			got, ok := g.Pixel(x, y)
			require.True(t, ok)
			require.Equal(t, c, got, "像素 (%d,%d)", x, y)
		}
	}

	// 越界不写入
	buf := make([]byte, FrameSize(16, 8)+32)
	for i := range buf {
		buf[i] = 0xAB
	}
	g, err := FrameFromBuffer(buf, 16, 8)
	require.NoError(t, err)
	for _, p := range [][2]int{{16, 0}, {0, 8}, {-1, 3}, {3, -1}, {100, 100}} {
		DrawPixel(g, p[0], p[1], c)
	}
	for i, b := range buf {
		require.Equal(t, byte(0xAB), b, "偏移 %d 被修改", i)
	}
}

func TestFillRegion(t *testing.T) {
	f := newTestFrame(t, 32, 24)
	c := NewColor(10, 200, 10)

	DrawRect(f, 3, 5, 11, 7, c, -1)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p, _ := f.Pixel(x, y)
			inside := x >= 3 && x < 14 && y >= 5 && y < 12
			if inside {
				require.Equal(t, c, p, "像素 (%d,%d)", x, y)
			} else {
				require.Equal(t, NeutralChroma.Y, p.Y, "像素 (%d,%d)", x, y)
			}
		}
	}
}

func TestFillRegionClip(t *testing.T) {
	f := newTestFrame(t, 8, 8)
	c := Red

	FillRegion(f, -4, -4, 100, 100, c)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p, _ := f.Pixel(x, y)
			require.Equal(t, c, p)
		}
	}

	g := newTestFrame(t, 8, 8)
	FillRegion(g, 8, 0, 4, 4, c)
	FillRegion(g, 0, 0, 0, 4, c)
	FillRegion(g, 2, 2, -3, 4, c)
	require.Equal(t, newTestFrame(t, 8, 8).Y, g.Y)
}

func TestDrawRectOutline(t *testing.T) {
	f := newTestFrame(t, 40, 40)
	c := Yellow
	DrawRect(f, 10, 10, 10, 10, c, 2)

	// 四条边和右下角
	for _, p := range [][2]int{{10, 10}, {19, 11}, {10, 19}, {21, 21}, {20, 15}, {11, 20}} {
		got, _ := f.Pixel(p[0], p[1])
		require.Equal(t, c.Y, got.Y, "像素 %v", p)
	}
	// 内部不填充
	got, _ := f.Pixel(15, 15)
	require.Equal(t, NeutralChroma.Y, got.Y)
}

func TestDrawLine(t *testing.T) {
	f := newTestFrame(t, 32, 32)
	c := White

	DrawLine(f, 2, 2, 20, 2, c, 1)
	for x := 2; x <= 20; x++ {
		p, _ := f.Pixel(x, 2)
		require.Equal(t, c.Y, p.Y)
	}

	DrawLine(f, 5, 5, 5, 25, c, 3)
	for y := 5; y <= 25; y++ {
		for _, x := range []int{4, 5, 6} {
			p, _ := f.Pixel(x, y)
			require.Equal(t, c.Y, p.Y, "像素 (%d,%d)", x, y)
		}
	}

	// 对角线两端都被画到
	g := newTestFrame(t, 32, 32)
	DrawLine(g, 30, 1, 1, 30, c, 1)
	p, _ := g.Pixel(30, 1)
	require.Equal(t, c.Y, p.Y)
	p, _ = g.Pixel(1, 30)
	require.Equal(t, c.Y, p.Y)

	// 端点越界不会写出帧外
	h := newTestFrame(t, 16, 16)
	DrawLine(h, -50, -50, 500, 500, c, 4)
	p, _ = h.Pixel(15, 15)
	require.Equal(t, c.Y, p.Y)
}

func TestDrawCircle(t *testing.T) {
	const cx, cy, r, th = 32, 32, 12, 4
	f := newTestFrame(t, 64, 64)
	DrawCircle(f, cx, cy, r, Blue, th)

	painted := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Y[y*f.Width+x] != Blue.Y {
				continue
			}
			painted++
			d := math.Hypot(float64(x-cx), float64(y-cy))
			require.GreaterOrEqual(t, d, float64(r-th/2)-1.5, "像素 (%d,%d)", x, y)
			require.LessOrEqual(t, d, float64(r+th/2)+1.5, "像素 (%d,%d)", x, y)
		}
	}
	require.Greater(t, painted, 0)

	// 实心圆
	g := newTestFrame(t, 64, 64)
	DrawCircle(g, cx, cy, 7, Red, -1)
	for _, p := range [][2]int{{cx, cy}, {cx + 3, cy - 3}, {cx - 6, cy}, {cx, cy + 6}} {
		got, _ := g.Pixel(p[0], p[1])
		require.Equal(t, Red.Y, got.Y, "像素 %v", p)
	}
	got, _ := g.Pixel(cx+9, cy)
	require.Equal(t, NeutralChroma.Y, got.Y)
}

func TestDrawer_DrawText(t *testing.T) {
	font := DefaultFont()
	f := newTestFrame(t, 64, 32)
	DrawText(f, "Hi !", 2, 4, font, White)

	painted := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Y[y*f.Width+x] == White.Y {
				painted++
				require.GreaterOrEqual(t, x, 2)
				require.Less(t, x, 2+4*font.Width)
				require.GreaterOrEqual(t, y, 4)
				require.Less(t, y, 4+font.Height)
			}
		}
	}
	require.Greater(t, painted, 0)

	// 空格不画，被跳过的字符也不画
	g := newTestFrame(t, 64, 32)
	DrawText(g, "   ", 0, 0, font, White)
	require.Equal(t, newTestFrame(t, 64, 32).Y, g.Y)

	h := newTestFrame(t, 64, 32)
	DrawText(h, "XX", -font.Width*2, 0, font, White)
	require.Equal(t, newTestFrame(t, 64, 32).Y, h.Y)
}

func TestDrawTextClip(t *testing.T) {
	font := DefaultFont()
	f := newTestFrame(t, 20, 20)
	// 超出右边界和底部的字符被截断或上移，不会越界
	DrawText(f, "WWWWWWWW", 3, 18, font, White)
	DrawText(f, "WWWW", -3, -5, font, White)
	DrawText(f, "W", 100, 100, font, White)
}

func TestBlendImage(t *testing.T) {
	src := newTestFrame(t, 18, 4)
	dst := newTestFrame(t, 18, 4)
	src.Fill(Color{Y: 100, U: 128, V: 128})
	dst.Fill(Color{Y: 200, U: 50, V: 60})

	BlendImage(src, dst, 0.5, 0.5, 10)
	for _, v := range src.Y {
		require.Equal(t, uint8(160), v)
	}
	// 色度不变
	for i := 0; i < len(src.UV); i += 2 {
		require.Equal(t, uint8(128), src.UV[i])
	}

	BlendImage(src, dst, 2, 2, 0)
	for _, v := range src.Y {
		require.Equal(t, uint8(255), v)
	}
}
