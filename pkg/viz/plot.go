// Package viz renders degree-distribution and feature-space plots for
// generated replicates.
package viz

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lhchan/mixhop-syngen/pkg/mixhop"
)

// DegreeHistogram renders the degree distribution of a graph to a PNG
func DegreeHistogram(g *mixhop.Graph, path string) error {
	values := make(plotter.Values, g.NumNodes)
	for v, d := range g.Degrees {
		values[v] = float64(d)
	}

	p := plot.New()
	p.Title.Text = "Degree distribution"
	p.X.Label.Text = "degree"
	p.Y.Label.Text = "nodes"

	hist, err := plotter.NewHist(values, 16)
	if err != nil {
		return fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(hist)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// FeatureScatter renders the 2D feature matrix colored by class to a PNG
func FeatureScatter(x *mat.Dense, labels []int, numClasses int, path string) error {
	p := plot.New()
	p.Title.Text = "Node features"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for cls := 0; cls < numClasses; cls++ {
		var xys plotter.XYs
		for v, l := range labels {
			if l == cls {
				xys = append(xys, plotter.XY{X: x.At(v, 0), Y: x.At(v, 1)})
			}
		}
		if len(xys) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build scatter for class %d: %w", cls, err)
		}
		scatter.GlyphStyle.Color = plotutil.Color(cls)
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("class %d", cls+1), scatter)
	}

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// WriteAll renders both plots for one replicate under dir
func WriteAll(dir, name string, g *mixhop.Graph, x *mat.Dense, numClasses int) error {
	if err := DegreeHistogram(g, filepath.Join(dir, fmt.Sprintf("%s-degrees.png", name))); err != nil {
		return err
	}
	return FeatureScatter(x, g.Labels(), numClasses, filepath.Join(dir, fmt.Sprintf("%s-features.png", name)))
}
