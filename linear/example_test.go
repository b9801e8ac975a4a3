package linear_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/logreg/linear"
)

// ExampleLogisticRegression demonstrates training a binary classifier on the
// AND truth table and predicting class labels.
func ExampleLogisticRegression() {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{0, 0, 0, 1})

	clf := linear.NewLogisticRegression(
		linear.WithEpochs(2000),
		linear.WithLearningRate(0.5),
		linear.WithRandomState(42),
	)
	if err := clf.Fit(X, y); err != nil {
		fmt.Println("Error:", err)
		return
	}

	predictions, err := clf.Predict(X)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Fitted: %v\n", clf.IsFitted())
	fmt.Printf("Weights: %d\n", len(clf.Weights()))
	fmt.Printf("Epochs recorded: %d\n", len(clf.LossHistory()))
	for i := 0; i < 4; i++ {
		fmt.Printf("[%g %g] -> %g\n", X.At(i, 0), X.At(i, 1), predictions.At(i, 0))
	}
	// Output:
	// Fitted: true
	// Weights: 3
	// Epochs recorded: 2000
	// [0 0] -> 0
	// [0 1] -> 0
	// [1 0] -> 0
	// [1 1] -> 1
}

// ExampleLogisticRegression_validation shows per-epoch validation tracking.
func ExampleLogisticRegression_validation() {
	X := mat.NewDense(6, 1, []float64{-3, -2, -1, 1, 2, 3})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	clf := linear.NewLogisticRegression(
		linear.WithEpochs(100),
		linear.WithRandomState(7),
	)
	if err := clf.FitWithValidation(X, y, X, y); err != nil {
		fmt.Println("Error:", err)
		return
	}

	train := clf.LossHistory()
	val := clf.ValLossHistory()
	fmt.Printf("Train epochs: %d\n", len(train))
	fmt.Printf("Validation epochs: %d\n", len(val))
	fmt.Printf("Validation tracked: %v\n", val[len(val)-1] > 0)
	// Output:
	// Train epochs: 100
	// Validation epochs: 100
	// Validation tracked: true
}
