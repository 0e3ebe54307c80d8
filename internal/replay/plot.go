package replay

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFeature charts the tracked feature (joint angle, arm ratio or elbow
// offset) against the frame index and marks the frames where the count
// advanced. The image format follows the file extension.
func PlotFeature(records []Record, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Feature"

	pts := make(plotter.XYs, 0, len(records))
	var reps plotter.XYs
	lastCount := 0
	for _, rec := range records {
		if rec.Details == nil {
			continue
		}
		pt := plotter.XY{X: float64(rec.Frame), Y: rec.Details.Feature}
		pts = append(pts, pt)
		if c := rec.CountValue(); c > lastCount {
			reps = append(reps, pt)
			lastCount = c
		}
	}
	if len(pts) == 0 {
		return fmt.Errorf("plot %s: no in-view frames", path)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)
	p.Legend.Add("feature", line)

	if len(reps) > 0 {
		marks, err := plotter.NewScatter(reps)
		if err != nil {
			return err
		}
		marks.Color = color.RGBA{R: 220, A: 255}
		marks.Radius = vg.Points(3)
		p.Add(marks)
		p.Legend.Add("count", marks)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
