package regresslab

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

// ScatterFit generates an echart scatter of the observed points overlapped
// with the fitted line. The x, actual, and fitted slices must have the same
// length.
func ScatterFit(title string, x, actual, fitted []float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	scatterData := make([]opts.ScatterData, 0, len(x))
	for i := 0; i < len(x); i++ {
		scatterData = append(scatterData, opts.ScatterData{Value: []interface{}{x[i], actual[i]}})
	}
	scatter.AddSeries("observed", scatterData)

	// sort the fitted points by x so the overlay renders as a single line
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(
		idx,
		func(i, j int) bool {
			return x[idx[i]] < x[idx[j]]
		},
	)

	lineData := make([]opts.LineData, 0, len(x))
	for _, i := range idx {
		lineData = append(lineData, opts.LineData{Value: []interface{}{x[i], fitted[i]}})
	}
	line := charts.NewLine()
	line.AddSeries("fitted", lineData)
	scatter.Overlap(line)

	return scatter
}

// LineComparison generates an echart line chart of one series per metric
// across the comparison records.
func LineComparison(title string, records []EvaluationRecord, metrics map[string]func(EvaluationRecord) float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	line = line.SetXAxis(names)

	seriesNames := make([]string, 0, len(metrics))
	for name := range metrics {
		seriesNames = append(seriesNames, name)
	}
	sort.Strings(seriesNames)

	for _, seriesName := range seriesNames {
		metric := metrics[seriesName]
		lineData := make([]opts.LineData, 0, len(records))
		for _, rec := range records {
			lineData = append(lineData, opts.LineData{Value: metric(rec)})
		}
		line = line.AddSeries(seriesName, lineData)
	}
	return line
}

// PlotResults uses the Apache Echarts library to generate an html page
// showing the observed data with the baseline fit, the train and test RMSE of
// every model configuration, and their coefficient weight sums.
func (s *Study) PlotResults(w io.Writer) error {
	if s.comparison == nil || s.baseModel == nil {
		return ErrNotRun
	}

	x, err := s.data.Column("x1")
	if err != nil {
		return err
	}

	fitted, err := s.baseModel.Predict(mat.NewDense(len(x), 1, append([]float64{}, x...)))
	if err != nil {
		return fmt.Errorf("unable to predict with baseline model, %w", err)
	}

	records := s.comparison.Records()

	page := components.NewPage()
	page.AddCharts(
		ScatterFit("Observed vs Baseline Fit", x, s.data.Target(), fitted),
		LineComparison(
			"Model RMSE",
			records,
			map[string]func(EvaluationRecord) float64{
				"train_rmse": func(rec EvaluationRecord) float64 { return rec.TrainRMSE },
				"test_rmse":  func(rec EvaluationRecord) float64 { return rec.TestRMSE },
			},
		),
		LineComparison(
			"Sum of Absolute Weights",
			records,
			map[string]func(EvaluationRecord) float64{
				"sum_abs_weights": func(rec EvaluationRecord) float64 { return rec.SumAbsWeights },
			},
		),
	)
	return page.Render(io.MultiWriter(w))
}
