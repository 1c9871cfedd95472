// mkcharts renders the backoff charts embedded in the README: the spread of
// waits per attempt for a few jitter settings, and how total retry time
// accumulates across a run. Run from this directory; output lands in
// ./charts/.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"toil.dev/retry/backoff"
)

const (
	baseDelay = 1 * time.Second
	factor    = 2.0

	maxSeconds   = 20
	totalSamples = 200_000
	slotsPerSec  = 10
	totalSlots   = maxSeconds * slotsPerSec
	triesPer     = 4
)

type backoffGraph struct {
	label  string
	short  string
	jitter float64
}

func main() {
	rand.Seed(4321)
	log.SetFlags(log.Lshortfile)
	bg := []backoffGraph{
		{label: "no jitter", short: "nojitter", jitter: 0},
		{label: "jitter 0.25", short: "j25", jitter: 0.25},
		{label: "jitter 0.5", short: "j50", jitter: 0.5},
		{label: "jitter 1.0", short: "j100", jitter: 1},
	}
	makeLines(bg)
	makeHistograms(bg)
}

// makeLines plots when retries land on the wall clock, cumulatively, for each
// jitter setting. Without jitter every caller retries in lockstep; the wider
// settings spread the herd out.
func makeLines(bgs []backoffGraph) {
	p := plot.New()
	p.X.Label.Text = fmt.Sprintf(
		"Cumulative retry times across %d retries (base %v, factor %v)",
		triesPer, baseDelay, factor,
	)
	p.X.AutoRescale = true
	p.Y.AutoRescale = true
	p.Y.Label.Text = "Percentage of total calls"
	p.Y.Tick.Marker = pctTicks{}
	p.X.Tick.Marker = secTicks()

	for gi, g := range bgs {
		samples := make(samplePlotter, totalSlots)
		for i := 0; i < totalSamples; i++ {
			next := backoff.New(baseDelay, factor, g.jitter, nil)
			t := 0.0
			for j := 0; j < triesPer; j++ {
				t += next().Seconds()
				x := int(t * slotsPerSec)
				if x >= 0 && x < totalSlots {
					samples[x] += 1.0 / totalSamples
				}
			}
		}

		l, err := plotter.NewLine(samples)
		if err != nil {
			log.Fatal(err)
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = plotutil.Color(gi)

		p.Add(l)
		p.Legend.Add(g.label, l)
		p.Legend.Top = true
	}
	file := chartname("dists")
	fmt.Println(file)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, file); err != nil {
		log.Fatal(err)
	}
}

// makeHistograms renders one histogram per attempt for each jitter setting,
// tiled into a single image.
func makeHistograms(bgs []backoffGraph) {
	samples := make(valuePlotter, totalSamples*triesPer)

	for _, g := range bgs {
		for i := 0; i < totalSamples; i++ {
			subset := samples[i*triesPer : i*triesPer+triesPer]
			next := backoff.New(baseDelay, factor, g.jitter, nil)
			for j := 0; j < triesPer; j++ {
				subset[j] = next().Seconds()
			}
		}

		plots := make([][]*plot.Plot, 1)
		plots[0] = make([]*plot.Plot, triesPer)
		for i := 0; i < triesPer; i++ {
			h, err := plotter.NewHist(samples.Subset(triesPer, i), totalSlots)
			if err != nil {
				log.Fatal(err)
			}
			h.Normalize(100)
			tp := plot.New()
			tp.Title.Text = fmt.Sprintf("wait after attempt %d", i)
			tp.Add(h)
			plots[0][i] = tp
		}
		img := vgimg.New(font.Length(triesPer)*4*vg.Inch, 4*vg.Inch)
		dc := draw.New(img)
		t := draw.Tiles{Rows: 1, Cols: triesPer}
		canvases := plot.Align(plots, t, dc)
		for i := 0; i < triesPer; i++ {
			plots[0][i].Draw(canvases[0][i])
		}

		file := chartname(g.short, "hist", "tries")
		fmt.Println(file)
		w, err := os.Create(file)
		if err != nil {
			log.Fatalf("os.Create: %v", err)
		}
		if _, err = (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
			log.Fatalf("PngCanvas.WriteTo(): %v", err)
		}
		if err := w.Close(); err != nil {
			log.Fatal(err)
		}
	}
}

type samplePlotter []float64

func (sp samplePlotter) Len() int {
	return len(sp)
}

func (sp samplePlotter) XY(idx int) (x, y float64) {
	return float64(idx), sp[idx]
}

type valuePlotter []float64

func (vp valuePlotter) Len() int {
	return len(vp)
}

func (vp valuePlotter) Value(i int) float64 {
	return vp[i]
}

func (vp valuePlotter) Subset(divisor, offset int) subsetValuePlotter {
	return subsetValuePlotter{
		vp: vp,
		d:  divisor,
		o:  offset,
	}
}

type subsetValuePlotter struct {
	vp valuePlotter
	d  int
	o  int
}

func (sp subsetValuePlotter) Len() int {
	return len(sp.vp) / sp.d
}

func (sp subsetValuePlotter) Value(i int) float64 {
	return sp.vp[i*sp.d+sp.o]
}

type pctTicks struct{}

// Ticks computes the default tick marks, relabelling them as percentages.
func (pctTicks) Ticks(min, max float64) []plot.Tick {
	tks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range tks {
		if t.Label != "" {
			tks[i].Label = fmt.Sprintf("%s%%", strconv.FormatFloat(t.Value*100, 'G', -1, 64))
		}
	}
	return tks
}

func secTicks() plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, maxSeconds+1)
	for i := 1; i <= maxSeconds; i++ {
		if i <= 5 || i%5 == 0 {
			ticks = append(ticks, plot.Tick{
				Value: float64(i * slotsPerSec),
				Label: fmt.Sprintf("%ds", i),
			})
		}
	}
	return ticks
}

func chartname(parts ...any) string {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("os.Getwd():", err)
	}
	fname := []byte(filepath.Join(cwd, "charts") + string(filepath.Separator))
	for i, p := range parts {
		fname = fmt.Append(fname, p)
		if i < len(parts)-1 {
			fname = fmt.Append(fname, "_")
		}
	}
	fname = fmt.Append(fname, ".png")
	return string(fname)
}
