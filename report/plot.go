package report

import (
	"bytes"
	"io"
	"math"

	"github.com/carbocation/ibdlinkage/chrpos"
	"github.com/carbocation/ibdlinkage/significance"
	chart "github.com/wcharczuk/go-chart/v2"
)

// Chromosomes absent from the assembly lookup are drawn with this width.
const fallbackChromosomeLength = 100_000_000

// PlotConfig describes a Manhattan-style plot of -log10(p) along the genome.
type PlotConfig struct {
	Assembly    string
	Chromosomes []string
	Threshold   float64
	Width       int
	Height      int
}

type plotPoints struct {
	x, y  []float64
	ticks []chart.Tick
	total float64
}

func layout(results []significance.Result, cfg PlotConfig) (plotPoints, error) {
	offsets, total, err := chrpos.Offsets(cfg.Assembly, cfg.Chromosomes, fallbackChromosomeLength)
	if err != nil {
		return plotPoints{}, err
	}

	out := plotPoints{total: float64(total)}
	for _, r := range results {
		offset, exists := offsets[r.Chromosome]
		if !exists {
			continue
		}
		// Cells adjoining the sentinels are never tested, so End is finite.
		mid := float64(r.Start) + float64(r.End-r.Start)/2
		out.x = append(out.x, float64(offset)+mid)
		out.y = append(out.y, negLog10(r.P))
	}

	lengths, _ := chrpos.Lengths(cfg.Assembly)
	for _, chr := range cfg.Chromosomes {
		length, exists := lengths[chr]
		if !exists {
			length = fallbackChromosomeLength
		}
		out.ticks = append(out.ticks, chart.Tick{
			Value: float64(offsets[chr]) + float64(length)/2,
			Label: chr,
		})
	}

	return out, nil
}

func negLog10(p float64) float64 {
	if p <= 0 {
		return -math.Log10(math.SmallestNonzeroFloat64)
	}
	return -math.Log10(p)
}

// WritePlot renders every tested cell as a point at its genome-wide midpoint
// with the significance threshold drawn as a horizontal line. The output is
// a PNG.
func WritePlot(w io.Writer, results []significance.Result, cfg PlotConfig) error {
	points, err := layout(results, cfg)
	if err != nil {
		return err
	}

	if cfg.Width == 0 {
		cfg.Width = 1600
	}
	if cfg.Height == 0 {
		cfg.Height = 512
	}

	// go-chart refuses to draw a series without points.
	if len(points.x) == 0 {
		points.x, points.y = []float64{0}, []float64{0}
	}

	limit := negLog10(cfg.Threshold)

	graph := chart.Chart{
		Width:  cfg.Width,
		Height: cfg.Height,
		XAxis: chart.XAxis{
			Name:  "Chromosome",
			Ticks: points.ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: points.total},
		},
		YAxis: chart.YAxis{
			Name: "-log10(p)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Cells",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
				},
				XValues: points.x,
				YValues: points.y,
			},
			chart.ContinuousSeries{
				Name:    "Threshold",
				XValues: []float64{0, points.total},
				YValues: []float64{limit, limit},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	_, err = buffer.WriteTo(w)
	return err
}
