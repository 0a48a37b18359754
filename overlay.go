package stagehand

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	overlayLineWidth  = 2.0
	overlayHandleSize = 8.0
)

// overlayPixel is a 1x1 white image stretched into lines and handles.
// Created lazily so that purely computational use of the package never
// touches the GPU.
var overlayPixel *ebiten.Image

func overlaySource() *ebiten.Image {
	if overlayPixel == nil {
		overlayPixel = ebiten.NewImage(1, 1)
		overlayPixel.Fill(color.White)
	}
	return overlayPixel
}

// DrawOverlay renders the selected clip's rotated selection rectangle and
// its four corner scale handles onto dst in display space. This draws the
// editor affordance only; the scene itself is never rasterized here. No-op
// when nothing is selected or the viewport is degenerate.
func (c *Controller) DrawOverlay(dst *ebiten.Image, col color.Color) {
	g, ok := c.selectedGeometry()
	if !ok || !c.metrics.Valid() {
		return
	}

	outline := [4]Corner{CornerTopLeft, CornerTopRight, CornerBottomRight, CornerBottomLeft}
	var pts [4]Vec2
	for i, corner := range outline {
		x, y := c.displayCorner(g, corner)
		pts[i] = Vec2{X: x, Y: y}
	}

	for i := range pts {
		next := pts[(i+1)%len(pts)]
		drawOverlayLine(dst, pts[i], next, col)
	}
	rad := degToRad(g.Rotation)
	for _, p := range pts {
		drawOverlayHandle(dst, p, rad, col)
	}
}

// drawOverlayLine draws a line segment as a stretched, rotated pixel.
func drawOverlayLine(dst *ebiten.Image, a, b Vec2, col color.Color) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, overlayLineWidth)
	op.GeoM.Translate(0, -overlayLineWidth/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(a.X, a.Y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(overlaySource(), op)
}

// drawOverlayHandle draws a corner handle as a small square centered on p,
// rotated with the selection.
func drawOverlayHandle(dst *ebiten.Image, p Vec2, rad float64, col color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(overlayHandleSize, overlayHandleSize)
	op.GeoM.Translate(-overlayHandleSize/2, -overlayHandleSize/2)
	op.GeoM.Rotate(rad)
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(overlaySource(), op)
}
