package render

import (
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/TheoLvs/music-analysis/tonality"
	"github.com/TheoLvs/music-analysis/types"
)

const minWheelSize = 100

// Wheel is one polygon on a key wheel.
type Wheel struct {
	Name    string
	Summary tonality.Summary
}

// KeyWheel draws a polar chart with one spoke per pitch class, C at the
// top and going clockwise, and the radial axis fixed to [0, 1]. Each
// summary is drawn as a filled polygon.
func KeyWheel(w io.Writer, wheels []Wheel, size int) error {
	if size < minWheelSize {
		return errors.Wrapf(types.ErrInvalidOptions, "wheel size %d is below %d", size, minWheelSize)
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return errors.Wrap(err, "error parsing font")
	}

	c := gg.NewContext(size, size)
	c.SetColor(color.White)
	c.Clear()
	c.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: float64(size) / 32}))

	cx, cy := float64(size)/2, float64(size)/2
	radius := float64(size) * 0.38

	c.SetRGB(0.85, 0.85, 0.85)
	c.SetLineWidth(1)
	for _, r := range []float64{0.25, 0.5, 0.75, 1} {
		c.DrawCircle(cx, cy, r*radius)
		c.Stroke()
	}
	for pc := range tonality.PitchClasses {
		x, y := spoke(cx, cy, radius, pc)
		c.DrawLine(cx, cy, x, y)
		c.Stroke()
	}

	c.SetRGB(0.2, 0.2, 0.2)
	for pc, label := range tonality.PitchClasses {
		x, y := spoke(cx, cy, radius*1.1, pc)
		c.DrawStringAnchored(label, x, y, 0.5, 0.5)
	}

	colors := moreland.SmoothBlueRed().Palette(max(len(wheels), 2)).Colors()
	for i, wheel := range wheels {
		r, g, b, _ := colors[i].RGBA()
		red, green, blue := float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff

		for pc := range tonality.PitchClasses {
			x, y := spoke(cx, cy, radius*wheel.Summary[pc], pc)
			if pc == 0 {
				c.MoveTo(x, y)
			} else {
				c.LineTo(x, y)
			}
		}
		c.ClosePath()
		c.SetRGBA(red, green, blue, 0.25)
		c.FillPreserve()
		c.SetRGBA(red, green, blue, 0.9)
		c.SetLineWidth(2)
		c.Stroke()
	}

	if err := c.EncodePNG(w); err != nil {
		return errors.Wrap(err, "error encoding png")
	}
	return nil
}

// spoke returns the point at distance r along the spoke of pitch class pc.
func spoke(cx, cy, r float64, pc int) (float64, float64) {
	angle := gg.Radians(float64(pc)*30 - 90)
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}
