package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/uimotion/ui"
	"golang.org/x/image/colornames"
)

// fontMeasurer sizes auto-sized text fields with the face they are drawn in.
type fontMeasurer struct {
	face ebtext.Face
}

func (m fontMeasurer) MeasureText(s string) (w, h float64) {
	metrics := m.face.Metrics()
	return ebtext.Measure(s, m.face, metrics.HAscent+metrics.HDescent+metrics.HLineGap)
}

// drawElement draws e at the parent origin (ox, oy). Children of components
// are drawn relative to the component's top-left corner.
func (v *Viewer) drawElement(dst *ebiten.Image, e ui.Element, ox, oy, alpha float64) {
	o := e.Base()
	if !o.Displayed() {
		return
	}
	alpha *= o.Alpha()
	x, y := ox+o.XMin(), oy+o.YMin()

	switch el := e.(type) {
	case *ui.Component:
		if el != v.stage.Root() {
			vector.StrokeRect(dst, float32(x), float32(y), float32(o.Width()), float32(o.Height()), 1, fade(colornames.Slategray, alpha), false)
		}
		for _, child := range el.Children() {
			v.drawElement(dst, child, x, y, alpha)
		}
	case *ui.Image:
		v.fillBox(dst, o, x, y, el.Color(), alpha)
	case *ui.MovieClip:
		v.fillBox(dst, o, x, y, el.Color(), alpha*0.35)
		if n := el.FrameCount(); n > 0 {
			w := o.Width() * float64(el.Frame()+1) / float64(n)
			vector.FillRect(dst, float32(x), float32(y+o.Height()-3), float32(w), 3, fade(el.Color(), alpha), false)
		}
	case *ui.TextField:
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(o.ScaleX(), o.ScaleY())
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(el.Color())
		op.ColorScale.ScaleAlpha(float32(alpha))
		ebtext.Draw(dst, el.Text(), v.face, op)
	default:
		vector.StrokeRect(dst, float32(x), float32(y), float32(o.Width()), float32(o.Height()), 1, fade(colornames.Lightgrey, alpha), false)
	}
}

// fillBox draws o's rectangle scaled and rotated around its pivot.
func (v *Viewer) fillBox(dst *ebiten.Image, o *ui.Object, x, y float64, c color.Color, alpha float64) {
	w, h := o.Width(), o.Height()
	px, py := o.PivotX()*w, o.PivotY()*h

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-px, -py)
	op.GeoM.Scale(o.ScaleX(), o.ScaleY())
	op.GeoM.Rotate(o.Rotation() * math.Pi / 180)
	op.GeoM.Translate(x+px, y+py)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(v.pixel, op)
}

func fade(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * math.Max(0, math.Min(1, alpha)))
	return n
}
