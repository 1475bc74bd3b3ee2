// File /ui/render.go
package ui

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"hex_go/internal/game"
	"hex_go/internal/ui/geom"
)

var (
	colBackground = color.RGBA{0x1c, 0x1f, 0x27, 0xff}
	colCell       = color.RGBA{0x3a, 0x41, 0x52, 0xff}
	colCellLine   = color.RGBA{0x14, 0x16, 0x1c, 0xff}
	colPlayer1    = color.RGBA{0xe0, 0x4a, 0x4a, 0xff} // 红：上下相连
	colPlayer2    = color.RGBA{0x3d, 0x7c, 0xe0, 0xff} // 蓝：左右相连
	colHint       = color.RGBA{0xd8, 0xc0, 0x40, 0xa0}
	colText       = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	colTextDim    = color.RGBA{0x9a, 0xa0, 0xb0, 0xff}
	colBanner     = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

func stoneColour(p game.CellState) color.RGBA {
	if p == game.Player2 {
		return colPlayer2
	}
	return colPlayer1
}

// 渐变 shader：左上亮、右下暗
const gradKage = `//kage:unit pixels
package main

var Bright float
var Dark float

func Fragment(dst vec4, src vec2, col vec4) vec4 {
	c := imageSrc0At(src)
	p := (src - imageSrc0Origin()) / imageSrc0Size()
	t := clamp((p.x+p.y)*0.5, 0.0, 1.0)
	return vec4(c.rgb*mix(Bright, Dark, t), c.a)
}
`

var (
	gradShader    *ebiten.Shader
	whiteSubImage *ebiten.Image
)

func init() {
	s, err := ebiten.NewShader([]byte(gradKage))
	if err != nil {
		panic(err)
	}
	gradShader = s

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// fillHex 用中心扇形的 6 个三角形填充一个六边形
func fillHex(dst *ebiten.Image, corners [6][2]float64, cx, cy float64, fill color.Color) {
	c := color.RGBA64Model.Convert(fill).(color.RGBA64)
	r, g, b, a := float32(c.R)/0xffff, float32(c.G)/0xffff, float32(c.B)/0xffff, float32(c.A)/0xffff

	vs := make([]ebiten.Vertex, 0, 7)
	vs = append(vs, ebiten.Vertex{DstX: float32(cx), DstY: float32(cy), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a})
	for _, p := range corners {
		vs = append(vs, ebiten.Vertex{DstX: float32(p[0]), DstY: float32(p[1]), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a})
	}
	is := make([]uint16, 0, 18)
	for i := 0; i < 6; i++ {
		is = append(is, 0, uint16(1+i), uint16(1+(i+1)%6))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func strokeHex(dst *ebiten.Image, corners [6][2]float64, width float32, clr color.Color) {
	for k := range corners {
		a, b := corners[k], corners[(k+1)%6]
		vector.StrokeLine(dst, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, clr, true)
	}
}

// bakeBoard 预渲染空棋盘：格子、目标边、坐标
func bakeBoard(l geom.Layout, w, h int) *ebiten.Image {
	layer := ebiten.NewImage(w, h)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			p := game.Position{Row: r, Col: c}
			cx, cy := l.Center(p)
			fillHex(layer, l.Corners(p), cx, cy, colCell)
		}
	}

	shaded := ebiten.NewImage(w, h)
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = layer
	op.Uniforms = map[string]any{
		"Bright": float32(1.30),
		"Dark":   float32(0.75),
	}
	shaded.DrawRectShader(w, h, gradShader, op)

	lineW := float32(l.Size / 14)
	if lineW < 1 {
		lineW = 1
	}
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			strokeHex(shaded, l.Corners(game.Position{Row: r, Col: c}), lineW, colCellLine)
		}
	}
	for _, s := range l.Border() {
		vector.StrokeLine(shaded, float32(s.A[0]), float32(s.A[1]), float32(s.B[0]), float32(s.B[1]), 3*lineW, stoneColour(s.Owner), true)
	}

	face := basicfont.Face7x13
	for c := 0; c < l.Cols; c++ {
		x, y := l.Center(game.Position{Col: c})
		letter := strings.TrimRight(game.Position{Col: c}.String(), "0123456789")
		drawTextCentered(shaded, face, letter, x, y-l.Size*1.6, colTextDim)
	}
	for r := 0; r < l.Rows; r++ {
		x, y := l.Center(game.Position{Row: r})
		drawTextCentered(shaded, face, strconv.Itoa(r+1), x-l.InnerRadius()*2.1, y, colTextDim)
	}
	return shaded
}

func drawHint(dst *ebiten.Image, l geom.Layout, cells []game.Position) {
	for _, p := range cells {
		cx, cy := l.Center(p)
		fillHex(dst, l.Corners(p), cx, cy, colHint)
	}
}

func drawStones(dst *ebiten.Image, l geom.Layout, st *game.GameState) {
	rad := float32(l.InnerRadius() * 0.78)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			p := game.Position{Row: r, Col: c}
			who := st.Board.Get(p)
			if !who.IsPlayer() {
				continue
			}
			x, y := l.Center(p)
			vector.DrawFilledCircle(dst, float32(x), float32(y), rad, stoneColour(who), true)
			vector.StrokeCircle(dst, float32(x), float32(y), rad, 1.5, colCellLine, true)
		}
	}
	if n := len(st.History); n > 0 {
		x, y := l.Center(st.History[n-1].Pos)
		vector.DrawFilledCircle(dst, float32(x), float32(y), rad/4, colText, true)
	}
}

var bannerCache = map[string]*ebiten.Image{}

// drawBanner 在画面中间放大显示一行字
func drawBanner(dst *ebiten.Image, face font.Face, w, h int, msg string, clr color.Color) {
	vector.DrawFilledRect(dst, 0, float32(h)/2-48, float32(w), 96, colBanner, false)

	img := bannerCache[msg]
	if img == nil {
		b := text.BoundString(face, msg)
		img = ebiten.NewImage(b.Dx()+4, b.Dy()+4)
		text.Draw(img, msg, face, 2-b.Min.X, 2-b.Min.Y, clr)
		bannerCache[msg] = img
	}
	const k = 4
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(float64(w)/2-float64(img.Bounds().Dx())*k/2, float64(h)/2-float64(img.Bounds().Dy())*k/2)
	dst.DrawImage(img, op)
}

// 居中绘制文本，x, y 是目标中心点
func drawTextCentered(dst *ebiten.Image, face font.Face, s string, x, y float64, col color.Color) {
	b := text.BoundString(face, s)
	text.Draw(dst, s, face, int(x)-b.Dx()/2-b.Min.X, int(y)-b.Dy()/2-b.Min.Y, col)
}
