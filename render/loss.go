package render

import "io"

import "github.com/go-echarts/go-echarts/v2/charts"
import "github.com/go-echarts/go-echarts/v2/opts"
import "github.com/pkg/errors"
import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/plotutil"
import "gonum.org/v1/plot/vg"

import "github.com/neurlang/blobcount/trainer"

func points(curve []float64) plotter.XYs {
	pts := make(plotter.XYs, len(curve))
	for i, v := range curve {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}
	return pts
}

// LossPNG plots the training and validation loss per epoch as a PNG image.
func LossPNG(w io.Writer, h trainer.History) error {
	p := plot.New()
	p.Title.Text = "Model loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Mean squared error"

	if h.Len() > 0 {
		err := plotutil.AddLines(p, "loss", points(h.Loss), "val_loss", points(h.ValLoss))
		if err != nil {
			return errors.Wrap(err, "loss lines")
		}
	}
	p.Legend.Top = true

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return errors.Wrap(err, "loss png")
	}
	_, err = wt.WriteTo(w)
	return err
}

func lineData(curve []float64) []opts.LineData {
	data := make([]opts.LineData, len(curve))
	for i, v := range curve {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// LossHTML renders the loss curves as a self contained echarts page.
func LossHTML(w io.Writer, h trainer.History, subtitle string) error {
	epochs := make([]int, h.Len())
	for i := range epochs {
		epochs[i] = i + 1
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Model loss", Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Model loss", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Epoch"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Loss"}),
	)
	line.SetXAxis(epochs).
		AddSeries("loss", lineData(h.Loss)).
		AddSeries("val_loss", lineData(h.ValLoss))
	return line.Render(w)
}
