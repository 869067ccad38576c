package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/hero-trails/internal/render"
	"github.com/iburimskiy/hero-trails/internal/trails"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// imageSurface is the offscreen canvas the trails are stroked onto. Each
// trail is rasterized opaque into mask first and then composited once, so
// the overlapping triangles of a single stroke never add up.
type imageSurface struct {
	img      *ebiten.Image
	mask     *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newImageSurface(w, h int) (render.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, render.ErrNoSurface
	}
	return &imageSurface{img: ebiten.NewImage(w, h), mask: ebiten.NewImage(w, h)}, nil
}

func (s *imageSurface) Image() *ebiten.Image { return s.img }

func (s *imageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing images. Like a canvas, the content is lost.
func (s *imageSurface) Resize(w, h int) {
	if cw, ch := s.Size(); cw == w && ch == h {
		return
	}
	s.img.Deallocate()
	s.mask.Deallocate()
	s.img = ebiten.NewImage(w, h)
	s.mask = ebiten.NewImage(w, h)
}

func (s *imageSurface) Clear() {
	s.img.Clear()
}

func (s *imageSurface) Stroke(t *trails.Trail, style render.Style) {
	var path vector.Path
	t.Draw(&path)

	// vertices come back opaque white, which is what the mask needs
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(style.Width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	if len(s.indices) == 0 {
		return
	}
	area := vertexBounds(s.vertices).Intersect(s.mask.Bounds())
	if area.Empty() {
		return
	}
	for i := range s.vertices {
		s.vertices[i].SrcX, s.vertices[i].SrcY = 1, 1
	}

	mask := s.mask.SubImage(area).(*ebiten.Image)
	mask.Clear()
	mask.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(area.Min.X), float64(area.Min.Y))
	op.ColorScale.Scale(style.Color.Premultiplied())
	if style.Blend == render.BlendLighter {
		op.Blend = ebiten.BlendLighter
	}
	s.img.DrawImage(mask, op)
}

// vertexBounds is the pixel rectangle covering vs, padded for antialiasing.
func vertexBounds(vs []ebiten.Vertex) image.Rectangle {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, v := range vs {
		minX, maxX = min(minX, v.DstX), max(maxX, v.DstX)
		minY, maxY = min(minY, v.DstY), max(maxY, v.DstY)
	}
	return image.Rect(
		int(math.Floor(float64(minX)))-1, int(math.Floor(float64(minY)))-1,
		int(math.Ceil(float64(maxX)))+1, int(math.Ceil(float64(maxY)))+1,
	)
}

// fillPath fills a closed path with a solid color on dst.
func fillPath(dst *ebiten.Image, path *vector.Path, clr color.NRGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
