// Package metrics provides evaluation metrics for classification models.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/logreg/pkg/errors"
)

// logLossEpsilon clamps predicted probabilities before the logarithm.
const logLossEpsilon = 1e-15

// Accuracy calculates the fraction of correctly classified samples.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The accuracy score in [0, 1]
//   - An error if inputs are invalid
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yPred := mat.NewVecDense(4, []float64{0, 1, 1, 1})
//	acc, err := metrics.Accuracy(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Accuracy: %f\n", acc) // Output: Accuracy: 0.75
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, scigoErrors.NewValueError(
			"Accuracy",
			"input vectors cannot be nil",
		)
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, scigoErrors.NewValueError(
			"Accuracy",
			"input vectors cannot be empty",
		)
	}

	if n != yPred.Len() {
		return 0, scigoErrors.NewDimensionError(
			"Accuracy",
			n,
			yPred.Len(),
			0,
		)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// LogLoss calculates the mean binary cross-entropy between true binary
// labels and predicted positive-class probabilities.
//
// Probabilities are clamped to [1e-15, 1-1e-15] before taking logarithms so
// saturated predictions never produce an infinite loss.
//
// Parameters:
//   - yTrue: Ground truth binary labels (0 or 1)
//   - yProba: Predicted probabilities of the positive class
//
// Returns:
//   - The log loss (lower is better)
//   - An error if inputs are invalid
func LogLoss(yTrue, yProba *mat.VecDense) (float64, error) {
	if yTrue == nil || yProba == nil {
		return 0, scigoErrors.NewValueError(
			"LogLoss",
			"input vectors cannot be nil",
		)
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, scigoErrors.NewValueError(
			"LogLoss",
			"input vectors cannot be empty",
		)
	}

	if n != yProba.Len() {
		return 0, scigoErrors.NewDimensionError(
			"LogLoss",
			n,
			yProba.Len(),
			0,
		)
	}

	// yTrue must contain only binary values
	for i := 0; i < n; i++ {
		val := yTrue.AtVec(i)
		if val != 0.0 && val != 1.0 {
			return 0, scigoErrors.NewValidationError(
				"yTrue",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", val, i),
				val,
			)
		}
	}

	loss := 0.0
	for i := 0; i < n; i++ {
		p := yProba.AtVec(i)
		if p < logLossEpsilon {
			p = logLossEpsilon
		}
		if p > 1-logLossEpsilon {
			p = 1 - logLossEpsilon
		}
		y := yTrue.AtVec(i)
		loss += -y*math.Log(p) - (1.0-y)*math.Log(1.0-p)
	}

	return loss / float64(n), nil
}
