// Package render draws analysis results as PNG images.
package render

import (
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/TheoLvs/music-analysis/tonality"
	"github.com/TheoLvs/music-analysis/types"
)

const (
	heatmapWidth  = 15 * vg.Inch
	heatmapHeight = 4 * vg.Inch
	paletteSize   = 64
)

// grid adapts a [row][frame] matrix to plotter.GridXYZ with frames on
// the x axis in seconds.
type grid struct {
	z     [][]float64
	xStep float64
}

func (g *grid) Dims() (c, r int) { return len(g.z[0]), len(g.z) }
func (g *grid) Z(c, r int) float64 { return g.z[r][c] }
func (g *grid) X(c int) float64    { return float64(c) * g.xStep }
func (g *grid) Y(r int) float64    { return float64(r) }

func newGrid(m [][]float64, sr, hop int) (*grid, error) {
	if sr <= 0 || hop <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidOptions, "sample rate %d, hop %d", sr, hop)
	}
	if len(m) < 2 || len(m[0]) < 2 {
		return nil, errors.New("matrix needs at least 2 rows and 2 frames")
	}
	for _, row := range m {
		if len(row) != len(m[0]) {
			return nil, errors.New("matrix rows have unequal length")
		}
	}
	return &grid{z: m, xStep: float64(hop) / float64(sr)}, nil
}

func heatmap(w io.Writer, g *grid, title, yLabel string, ticks plot.Ticker) error {
	h := plotter.NewHeatMap(g, moreland.SmoothBlueRed().Palette(paletteSize))
	h.Rasterized = true
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yLabel
	p.X.Padding = 0
	p.Y.Padding = 0
	if ticks != nil {
		p.Y.Tick.Marker = ticks
	}
	p.Add(h)

	img := vgimg.New(heatmapWidth, heatmapHeight)
	p.Draw(draw.New(img))

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(err, "error encoding png")
	}
	return nil
}

// Spectrogram draws a dB mel spectrogram, indexed [mel][frame].
func Spectrogram(w io.Writer, db [][]float64, sr, hop int, title string) error {
	g, err := newGrid(db, sr, hop)
	if err != nil {
		return err
	}
	return heatmap(w, g, title, "Mel band", nil)
}

// Chromagram draws chroma energy, indexed [pitch class][frame], with the
// pitch class names on the y axis.
func Chromagram(w io.Writer, chroma [][]float64, sr, hop int, title string) error {
	if len(chroma) != tonality.NumPitchClasses {
		return errors.Wrapf(types.ErrMalformedChroma, "got %d rows", len(chroma))
	}
	g, err := newGrid(chroma, sr, hop)
	if err != nil {
		return err
	}
	return heatmap(w, g, title, "Pitch class", plot.TickerFunc(pitchTicks))
}

func pitchTicks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, tonality.NumPitchClasses)
	for pc, label := range tonality.PitchClasses {
		ticks = append(ticks, plot.Tick{Value: float64(pc), Label: label})
	}
	return ticks
}
