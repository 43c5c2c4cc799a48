package postproc

import (
	"github.com/stretchr/testify/require"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFrameFromBuffer(t *testing.T) {
	buf := make([]byte, FrameSize(8, 4))
	f, err := FrameFromBuffer(buf, 8, 4)
	require.NoError(t, err)
	require.Len(t, f.Y, 32)
	require.Len(t, f.UV, 16)

	// UV 紧跟在 Y 之后
	f.UV[0] = 7
	require.Equal(t, byte(7), buf[32])

	_, err = FrameFromBuffer(buf, 7, 4)
	require.ErrorIs(t, err, ErrInvalidFrame)
	_, err = FrameFromBuffer(buf, 8, 6)
	require.ErrorIs(t, err, ErrInvalidFrame)
	_, err = NewFrame(0, 4)
	require.ErrorIs(t, err, ErrInvalidFrame)
}

func TestColor(t *testing.T) {
	require.Equal(t, Color{Y: 16, U: 128, V: 128}, NewColor(0, 0, 0))
	require.Equal(t, Color{Y: 235, U: 128, V: 128}, NewColor(255, 255, 255))
	require.Equal(t, Color{Y: 82, U: 90, V: 240}, NewColor(255, 0, 0))

	r, g, b, _ := NewColor(255, 0, 0).RGBA()
	require.InDelta(t, 255, r>>8, 2)
	require.InDelta(t, 0, g>>8, 2)
	require.InDelta(t, 0, b>>8, 2)
}

func TestFrameImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f, err := FrameFromImage(src, 16, 8)
	require.NoError(t, err)

	p, ok := f.Pixel(5, 5)
	require.True(t, ok)
	require.Equal(t, NewColor(255, 0, 0), p)

	img := f.Image()
	require.Equal(t, f.Bounds(), img.Bounds())
	yy, cb, cr := img.YCbCrAt(3, 3).Y, img.YCbCrAt(3, 3).Cb, img.YCbCrAt(3, 3).Cr
	require.Equal(t, p, Color{Y: yy, U: cb, V: cr})
}

func TestSaveFrame(t *testing.T) {
	f, err := NewFrame(16, 8)
	require.NoError(t, err)
	f.Fill(NewColor(0, 0, 255))

	dir := t.TempDir()
	require.NoError(t, SaveFrame(filepath.Join(dir, "ok.png"), f, 90))
	_, err = os.Stat(filepath.Join(dir, "ok.png"))
	require.NoError(t, err)

	// 父目录是普通文件，无法创建
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	err = SaveFrame(filepath.Join(blocker, "out.png"), f, 90)
	require.Error(t, err)
	require.Contains(t, err.Error(), "保存图片失败")

	require.ErrorIs(t, SaveFrame(filepath.Join(dir, "nil.png"), nil, 90), ErrInvalidFrame)
}
