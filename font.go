package postproc

import (
	"fmt"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"image"
	"sync"
)

const (
	firstGlyph = 33  // '!'
	lastGlyph  = 126 // '~'
	numGlyphs  = lastGlyph - firstGlyph + 1

	// gomono 的字宽约为字号的 0.6
	monoAdvanceRatio = 0.6
	minFontWidth     = 4
)

// Font 等宽点阵字体
//
// 每个字符 Width*Height 位，按行优先、低位在前打包进 uint32，
// 每个字符占 ceil(Width*Height/32) 个字，字符之间不共用同一个字。
type Font struct {
	Width  int
	Height int

	words  int
	glyphs []uint32
}

// NewFontFromFace 将任意 font.Face 栅格化为点阵字体
//
// # Params:
//
//	face: 字体，例如 basicfont.Face7x13 或 opentype.NewFace 的结果
//	padding: 字符左右各留的像素
func NewFontFromFace(face font.Face, padding int) *Font {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	h := ascent + m.Descent.Ceil()
	w := 0
	for c := rune(firstGlyph); c <= lastGlyph; c++ {
		if adv, ok := face.GlyphAdvance(c); ok {
			w = max(w, adv.Ceil())
		}
	}
	if w&1 != 0 {
		w++
	}
	if h&1 != 0 {
		h++
	}
	w += 2 * max(padding, 0)

	f := &Font{
		Width:  w,
		Height: h,
		words:  (w*h + 31) / 32,
	}
	f.glyphs = make([]uint32, numGlyphs*f.words)

	canvas := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.Opaque,
		Face: face,
	}
	for i := 0; i < numGlyphs; i++ {
		clear(canvas.Pix)
		d.Dot = fixed.P(max(padding, 0), ascent)
		d.DrawString(string(rune(firstGlyph + i)))

		glyph := f.glyphs[i*f.words : (i+1)*f.words]
		bit := 0
		for y := 0; y < h; y++ {
			row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w]
			for x := 0; x < w; x++ {
				if row[x] >= 127 {
					glyph[bit>>5] |= 1 << (bit & 31)
				}
				bit++
			}
		}
	}
	return f
}

// Glyph 返回字符的点阵数据，不可打印字符返回 nil
func (f *Font) Glyph(c byte) []uint32 {
	if c < firstGlyph || c > lastGlyph {
		return nil
	}
	i := int(c) - firstGlyph
	return f.glyphs[i*f.words : (i+1)*f.words]
}

// TextWidth 文本占用的像素宽度
func (f *Font) TextWidth(text string) int {
	return len(text) * f.Width
}

var (
	monoOnce  sync.Once
	monoFont  *opentype.Font
	monoErr   error
	fontMu    sync.Mutex
	fontCache = map[int]*Font{}
)

// GetFont 返回字宽最接近 width 像素的等宽字体 (Go Mono)
//
// 同一宽度的字体只生成一次，生成后只读，可在多个协程间共享。
func GetFont(width int) (*Font, error) {
	width = max(width, minFontWidth)

	fontMu.Lock()
	defer fontMu.Unlock()
	if f, ok := fontCache[width]; ok {
		return f, nil
	}

	monoOnce.Do(func() {
		monoFont, monoErr = opentype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		return nil, fmt.Errorf("解析字体文件失败：%w", monoErr)
	}

	face, err := opentype.NewFace(monoFont, &opentype.FaceOptions{
		Size:    float64(width) / monoAdvanceRatio,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体失败：%w", err)
	}
	defer face.Close()

	f := NewFontFromFace(face, 0)
	fontCache[width] = f
	return f, nil
}

// DefaultFont 7x13 的内置点阵字体
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		defaultFont = NewFontFromFace(basicfont.Face7x13, 0)
	})
	return defaultFont
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)
