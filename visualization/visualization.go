// Package visualization renders diagnostic plots for trained classifiers.
//
// Plotting is a best-effort auxiliary concern: unsuitable inputs (such as a
// feature count other than 2 for a decision-region plot) are reported as a
// logged diagnostic rather than an error, and the numeric engine is never
// affected by plotting failures.
package visualization

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ezoic/logreg/core/parallel"
	scigoErrors "github.com/ezoic/logreg/pkg/errors"
	"github.com/ezoic/logreg/pkg/log"
)

// Classifier is the prediction surface consumed by the decision-region plot.
type Classifier interface {
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

const (
	// gridResolution is the number of grid points per axis in the
	// decision-region plot.
	gridResolution = 100

	// gridMargin widens the plotted region beyond the data range,
	// as a fraction of the range per side.
	gridMargin = 0.1

	// Probability grids below this row count are filled sequentially.
	gridParallelThreshold = 4096
)

// probabilityGrid implements plotter.GridXYZ over a regular grid of
// predicted positive-class probabilities.
type probabilityGrid struct {
	xs, ys []float64
	probs  []float64 // row-major, len(xs)*len(ys)
}

func (g *probabilityGrid) Dims() (int, int)   { return len(g.xs), len(g.ys) }
func (g *probabilityGrid) X(c int) float64    { return g.xs[c] }
func (g *probabilityGrid) Y(r int) float64    { return g.ys[r] }
func (g *probabilityGrid) Z(c, r int) float64 { return g.probs[r*len(g.xs)+c] }

// DecisionBoundary renders the classifier's probability field over the plane
// spanned by two raw features, overlays the labeled samples, and saves the
// plot as a PNG at the given path.
//
// X must have exactly 2 features. Any other feature count is reported as a
// warning diagnostic and the function returns nil without rendering.
func DecisionBoundary(clf Classifier, X, y mat.Matrix, path string) error {
	logger := log.GetLoggerWithName("visualization")

	r, c := X.Dims()
	if c != 2 {
		logger.Warn("Decision boundary plot skipped",
			log.FeaturesKey, c,
			"reason", "requires exactly 2 raw features",
		)
		return nil
	}
	if ry, _ := y.Dims(); ry != r {
		return scigoErrors.NewDimensionError("visualization.DecisionBoundary", r, ry, 0)
	}

	xMin, xMax := columnRange(X, 0)
	yMin, yMax := columnRange(X, 1)

	grid, err := buildProbabilityGrid(clf, xMin, xMax, yMin, yMax)
	if err != nil {
		return scigoErrors.Wrap(err, "failed to evaluate probability grid")
	}

	p := plot.New()
	p.Title.Text = "Decision Boundary"
	p.X.Label.Text = "Feature 1"
	p.Y.Label.Text = "Feature 2"

	heatMap := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	heatMap.Min = 0
	heatMap.Max = 1
	p.Add(heatMap)

	negative, positive := splitByClass(X, y)
	if len(negative) > 0 {
		scatter, err := plotter.NewScatter(negative)
		if err != nil {
			return scigoErrors.Wrap(err, "failed to create scatter plot")
		}
		scatter.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("class 0", scatter)
	}
	if len(positive) > 0 {
		scatter, err := plotter.NewScatter(positive)
		if err != nil {
			return scigoErrors.Wrap(err, "failed to create scatter plot")
		}
		scatter.GlyphStyle.Color = color.RGBA{G: 180, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("class 1", scatter)
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return scigoErrors.Wrap(err, "failed to save plot")
	}

	logger.Info("Decision boundary plot saved",
		log.SamplesKey, r,
		"path", path,
	)

	return nil
}

// LossCurves renders per-epoch loss histories as line plots and saves the
// result as a PNG at the given path. The validation series is optional; pass
// nil to plot the training curve alone.
func LossCurves(trainLoss, valLoss []float64, path string) error {
	if len(trainLoss) == 0 {
		return scigoErrors.NewValueError("visualization.LossCurves", "training loss history cannot be empty")
	}
	if valLoss != nil && len(valLoss) != len(trainLoss) {
		return scigoErrors.NewDimensionError("visualization.LossCurves", len(trainLoss), len(valLoss), 0)
	}

	p := plot.New()
	p.Title.Text = "Training Loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Loss"

	trainLine, err := plotter.NewLine(historyXYs(trainLoss))
	if err != nil {
		return scigoErrors.Wrap(err, "failed to create loss line")
	}
	trainLine.Width = vg.Points(2)
	p.Add(trainLine)
	p.Legend.Add("train", trainLine)

	if valLoss != nil {
		valLine, err := plotter.NewLine(historyXYs(valLoss))
		if err != nil {
			return scigoErrors.Wrap(err, "failed to create validation loss line")
		}
		valLine.Width = vg.Points(2)
		valLine.Color = color.RGBA{R: 255, A: 255}
		p.Add(valLine)
		p.Legend.Add("validation", valLine)
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return scigoErrors.Wrap(err, "failed to save plot")
	}

	return nil
}

// buildProbabilityGrid evaluates the classifier over a regular grid spanning
// the data range plus a margin.
func buildProbabilityGrid(clf Classifier, xMin, xMax, yMin, yMax float64) (*probabilityGrid, error) {
	xMin, xMax = widen(xMin, xMax)
	yMin, yMax = widen(yMin, yMax)

	xs := linspace(xMin, xMax, gridResolution)
	ys := linspace(yMin, yMax, gridResolution)

	points := mat.NewDense(gridResolution*gridResolution, 2, nil)
	parallel.ParallelizeWithThreshold(gridResolution*gridResolution, gridParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			points.Set(i, 0, xs[i%gridResolution])
			points.Set(i, 1, ys[i/gridResolution])
		}
	})

	probas, err := clf.PredictProba(points)
	if err != nil {
		return nil, err
	}

	probs := make([]float64, gridResolution*gridResolution)
	for i := range probs {
		probs[i] = probas.At(i, 0)
	}

	return &probabilityGrid{xs: xs, ys: ys, probs: probs}, nil
}

// splitByClass partitions the two-feature samples into negative and positive
// scatter point sets.
func splitByClass(X, y mat.Matrix) (negative, positive plotter.XYs) {
	r, _ := X.Dims()
	for i := 0; i < r; i++ {
		pt := plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		if y.At(i, 0) == 1 {
			positive = append(positive, pt)
		} else {
			negative = append(negative, pt)
		}
	}
	return negative, positive
}

func historyXYs(history []float64) plotter.XYs {
	pts := make(plotter.XYs, len(history))
	for i, v := range history {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

func columnRange(X mat.Matrix, col int) (min, max float64) {
	r, _ := X.Dims()
	min, max = X.At(0, col), X.At(0, col)
	for i := 1; i < r; i++ {
		v := X.At(i, col)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func widen(min, max float64) (float64, float64) {
	span := max - min
	if span == 0 {
		span = 1
	}
	return min - gridMargin*span, max + gridMargin*span
}

func linspace(min, max float64, n int) []float64 {
	step := (max - min) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = min + float64(i)*step
	}
	return values
}
