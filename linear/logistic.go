// Package linear provides linear machine learning algorithms and models.
//
// This package implements binary logistic regression trained with batch
// gradient descent:
//
//   - LogisticRegression: binary classifier with an L2 penalty on the loss
//   - Internal bias augmentation shared by Fit, Predict and PredictProba
//   - Per-epoch training and validation loss histories
//   - Production-ready with comprehensive error handling and validation
//
// Example usage:
//
//	clf := linear.NewLogisticRegression(
//		linear.WithEpochs(1000),
//		linear.WithLearningRate(0.1),
//	)
//	err := clf.Fit(X, y) // X: features, y: binary labels (0/1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	probs, err := clf.PredictProba(XTest)
//	classes, err := clf.Predict(XTest)
//
// The package supports model persistence in a JSON format:
//
//	// Save trained model
//	err = clf.ExportToJSON("model.json")
//
//	// Load a previously trained model
//	err = clf.LoadFromJSON("model.json")
//
// The model follows the standard estimator interface with Fit/Predict methods
// and integrates with the metrics and visualization packages.
package linear

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/logreg/core/model"
	"github.com/ezoic/logreg/core/parallel"
	"github.com/ezoic/logreg/metrics"
	scigoErrors "github.com/ezoic/logreg/pkg/errors"
	"github.com/ezoic/logreg/pkg/log"
)

const (
	// probEpsilon is the clamp applied to predicted probabilities before
	// taking logarithms, so saturated sigmoids never produce log(0).
	probEpsilon = 1e-15

	// regExcludedIndex is the weight index excluded from the L2 penalty.
	// The exclusion is positional, not tied to the bias: the bias column is
	// appended LAST, so index 0 holds a genuine feature weight while the
	// bias weight itself is penalized. Kept as-is to reproduce the
	// historical trainer behavior.
	regExcludedIndex = 0

	// classThreshold converts probabilities to class labels in Predict.
	classThreshold = 0.5

	// initWeightScale scales the random normal weight initialization.
	initWeightScale = 0.01

	// Row counts below this value are augmented sequentially.
	augmentParallelThreshold = 1000

	defaultEpochs       = 100
	defaultLearningRate = 0.1
)

// LogisticRegression is a binary logistic regression classifier trained with
// full-batch gradient descent at a fixed learning rate.
type LogisticRegression struct {
	State *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding

	// Hyperparameters, fixed at construction
	epochs              int     // Number of full-batch gradient steps
	learningRate        float64 // Step size, also the L2 penalty strength in the loss
	withBias            bool    // Whether to append a constant bias column
	verbose             bool    // Emit one progress log line per epoch
	regularizedGradient bool    // Include the L2 derivative in the gradient step
	randomState         int64   // Seed for weight initialization, negative for non-deterministic

	// Learned parameters
	weights   []float64 // Bias weight last when withBias is set
	nFeatures int       // Raw feature count seen during Fit

	// Per-epoch loss histories, allocated to the epoch count at Fit time.
	// valLossHistory stays zero-valued when no validation data is supplied.
	lossHistory    []float64
	valLossHistory []float64

	rng    *rand.Rand
	logger log.Logger
}

// NewLogisticRegression creates a new binary logistic regression classifier.
//
// The returned model must be trained with Fit (or FitWithValidation) before
// making predictions. Defaults: 100 epochs, learning rate 0.1, bias column
// enabled, quiet, plain cross-entropy gradient.
//
// Example:
//
//	clf := linear.NewLogisticRegression(
//		linear.WithEpochs(500),
//		linear.WithLearningRate(0.05),
//		linear.WithRandomState(42),
//	)
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		State:        model.NewStateManager(),
		epochs:       defaultEpochs,
		learningRate: defaultLearningRate,
		withBias:     true,
		verbose:      false,
		randomState:  -1,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if lr.randomState >= 0 {
		lr.rng = rand.New(rand.NewPCG(uint64(lr.randomState), uint64(lr.randomState)))
	} else {
		now := uint64(time.Now().UnixNano())
		lr.rng = rand.New(rand.NewPCG(now, now^0xdeadbeef))
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LogisticRegression",
		log.ComponentKey, "linear",
	)

	return lr
}

// stableSigmoid computes sigmoid(z) in a numerically stable way.
func stableSigmoid(z float64) float64 {
	if z >= 0 {
		ez := math.Exp(-z)
		return 1.0 / (1.0 + ez)
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// clampProbability clamps a probability to [probEpsilon, 1-probEpsilon]
// to avoid log(0).
func clampProbability(p float64) float64 {
	if p < probEpsilon {
		return probEpsilon
	}
	if p > 1-probEpsilon {
		return 1 - probEpsilon
	}
	return p
}

// validateConfig checks the hyperparameters before any computation.
func (lr *LogisticRegression) validateConfig() error {
	if lr.epochs <= 0 {
		return scigoErrors.NewValidationError("epochs", "must be a positive integer", lr.epochs)
	}
	if lr.learningRate <= 0 {
		return scigoErrors.NewValidationError("learning_rate", "must be a positive number", lr.learningRate)
	}
	return nil
}

// Fit trains the model on the given feature matrix and binary label vector.
//
// The trainer runs exactly the configured number of epochs. Each epoch
// computes predictions with the current weights, records the training loss
// for those weights, and then applies one full-batch gradient step. The
// recorded loss therefore reflects the weights BEFORE that epoch's update.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features), raw (unaugmented)
//   - y: Label column vector of shape (n_samples, 1) with values in {0, 1}
//
// Returns:
//   - error: nil if training succeeds, otherwise an error describing the failure
//
// Errors:
//   - ValidationError: if epochs or learning rate are not positive
//   - DimensionError: if the sample counts of X and y differ
//   - ValueError: if y is not a column vector of binary labels
//   - NumericalInstabilityError: if a recorded loss is NaN or Inf
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	return lr.FitWithValidation(X, y, nil, nil)
}

// FitWithValidation trains the model like Fit and additionally records a
// validation loss per epoch. The validation loss for an epoch is computed
// with the same pre-update weights as that epoch's training loss.
//
// XVal and yVal must be given together; passing one without the other is a
// validation error. XVal must have the same feature count as X.
func (lr *LogisticRegression) FitWithValidation(X, y, XVal, yVal mat.Matrix) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.Fit")

	if err := lr.validateConfig(); err != nil {
		return err
	}

	startTime := time.Now()
	r, c := X.Dims()

	if r == 0 || c == 0 {
		return scigoErrors.NewModelError("LogisticRegression.Fit", "empty data", scigoErrors.ErrEmptyData)
	}

	yTrain, err := labelVector("LogisticRegression.Fit", y, r)
	if err != nil {
		return err
	}

	hasVal := XVal != nil || yVal != nil
	var yValVec []float64
	if hasVal {
		if XVal == nil || yVal == nil {
			return scigoErrors.NewValidationError("X_val/y_val",
				"validation features and labels must be supplied together", nil)
		}
		rv, cv := XVal.Dims()
		if cv != c {
			return scigoErrors.NewDimensionError("LogisticRegression.Fit", c, cv, 1)
		}
		yValVec, err = labelVector("LogisticRegression.Fit", yVal, rv)
		if err != nil {
			return err
		}
	}

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.EpochCountKey, lr.epochs,
		log.LearningRateKey, lr.learningRate,
	)

	lr.nFeatures = c

	// Augmentation is applied fresh to the raw inputs on every call, so a
	// second Fit on the same matrix cannot double-augment.
	XTrain := lr.augment(X)
	var XValAug mat.Matrix
	if hasVal {
		XValAug = lr.augment(XVal)
	}

	_, nWeights := XTrain.Dims()
	lr.weights = make([]float64, nWeights)
	for j := range lr.weights {
		lr.weights[j] = lr.rng.NormFloat64() * initWeightScale
	}

	lr.lossHistory = make([]float64, lr.epochs)
	lr.valLossHistory = make([]float64, lr.epochs)

	for epoch := 0; epoch < lr.epochs; epoch++ {
		preds := lr.hypothesis(XTrain)

		trainLoss := lr.lossValue(yTrain, preds)
		if err := scigoErrors.CheckScalar("loss_evaluation", trainLoss, epoch); err != nil {
			return err
		}
		lr.lossHistory[epoch] = trainLoss

		if hasVal {
			valLoss := lr.lossValue(yValVec, lr.hypothesis(XValAug))
			if err := scigoErrors.CheckScalar("validation_loss_evaluation", valLoss, epoch); err != nil {
				return err
			}
			lr.valLossHistory[epoch] = valLoss
		}

		lr.updateWeights(XTrain, yTrain, preds)

		if lr.verbose {
			fields := []any{
				log.OperationKey, log.OperationFit,
				log.EpochKey, epoch + 1,
				log.LossKey, trainLoss,
			}
			if hasVal {
				fields = append(fields, log.ValLossKey, lr.valLossHistory[epoch])
			}
			lr.logger.Info("Epoch finished", fields...)
		}
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(lr.nFeatures, r)

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.LossKey, lr.lossHistory[lr.epochs-1],
	)

	return nil
}

// labelVector validates y as a binary (n, 1) column and flattens it.
func labelVector(op string, y mat.Matrix, nSamples int) ([]float64, error) {
	ry, cy := y.Dims()
	if ry != nSamples {
		return nil, scigoErrors.NewDimensionError(op, nSamples, ry, 0)
	}
	if cy != 1 {
		return nil, scigoErrors.NewValueError(op, "y must be a column vector")
	}

	labels := make([]float64, ry)
	for i := 0; i < ry; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return nil, scigoErrors.NewValueError(op, "y must contain only binary labels (0 or 1)")
		}
		labels[i] = v
	}
	return labels, nil
}

// augment appends a constant column of ones as the LAST column when the bias
// term is enabled; otherwise it returns the input unchanged. The input matrix
// is never mutated.
func (lr *LogisticRegression) augment(X mat.Matrix) mat.Matrix {
	if !lr.withBias {
		return X
	}

	r, c := X.Dims()
	augmented := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, augmentParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				augmented.Set(i, j, X.At(i, j))
			}
			augmented.Set(i, c, 1.0) // bias column
		}
	})

	return augmented
}

// hypothesis computes the sigmoid-transformed linear score for every sample
// of the (already augmented) matrix using the current weights.
func (lr *LogisticRegression) hypothesis(X mat.Matrix) []float64 {
	r, c := X.Dims()
	preds := make([]float64, r)
	for i := 0; i < r; i++ {
		z := 0.0
		for j := 0; j < c; j++ {
			z += X.At(i, j) * lr.weights[j]
		}
		preds[i] = stableSigmoid(z)
	}
	return preds
}

// lossValue computes the mean binary cross-entropy of the predictions plus
// the L2 penalty `learningRate/(2*n_weights) * sum(w_j^2, j != regExcludedIndex)`.
// Probabilities are clamped to [probEpsilon, 1-probEpsilon] first.
func (lr *LogisticRegression) lossValue(y, preds []float64) float64 {
	n := len(y)
	loss := 0.0
	for i := 0; i < n; i++ {
		p := clampProbability(preds[i])
		loss += -y[i]*math.Log(p) - (1.0-y[i])*math.Log(1.0-p)
	}
	loss /= float64(n)

	reg := 0.0
	for j, w := range lr.weights {
		if j == regExcludedIndex {
			continue
		}
		reg += w * w
	}
	loss += lr.learningRate / (2.0 * float64(len(lr.weights))) * reg

	return loss
}

// updateWeights applies one full-batch gradient descent step in place.
// The gradient is the plain cross-entropy gradient `mean(X[:,j] * (p - y))`;
// the L2 derivative is added only when WithRegularizedGradient was enabled.
func (lr *LogisticRegression) updateWeights(X mat.Matrix, y, preds []float64) {
	r, c := X.Dims()

	grad := make([]float64, c)
	for i := 0; i < r; i++ {
		diff := preds[i] - y[i]
		for j := 0; j < c; j++ {
			grad[j] += diff * X.At(i, j)
		}
	}

	invN := 1.0 / float64(r)
	for j := range grad {
		grad[j] *= invN
	}

	if lr.regularizedGradient {
		scale := lr.learningRate / float64(len(lr.weights))
		for j := range grad {
			if j == regExcludedIndex {
				continue
			}
			grad[j] += scale * lr.weights[j]
		}
	}

	for j := range lr.weights {
		lr.weights[j] -= lr.learningRate * grad[j]
	}
}

// PredictProba returns the predicted probability of the positive class for
// each sample, as a matrix of shape (n_samples, 1).
//
// X must carry the raw (unaugmented) features; the bias column configured at
// construction is appended internally, exactly as during Fit.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.PredictProba")

	if !lr.State.IsFitted() {
		return nil, scigoErrors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	r, c := X.Dims()
	if c != lr.nFeatures {
		return nil, scigoErrors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures, c, 1)
	}

	lr.logger.Debug("Prediction started",
		log.OperationKey, log.OperationPredictProba,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	preds := lr.hypothesis(lr.augment(X))

	probas := mat.NewDense(r, 1, preds)

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredictProba,
		log.PredsKey, r,
	)

	return probas, nil
}

// Predict returns the predicted class label (0 or 1) for each sample, as a
// matrix of shape (n_samples, 1). Probabilities at or above 0.5 map to 1.
func (lr *LogisticRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.Predict")

	probas, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := probas.Dims()
	classes := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if probas.At(i, 0) >= classThreshold {
			classes.Set(i, 0, 1)
		}
	}

	return classes, nil
}

// Score returns the mean accuracy of Predict on the given test data.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.Score")

	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, predictions.At(i, 0))
	}

	return metrics.Accuracy(yTrue, yPred)
}

// Weights returns a copy of the learned weights. When the bias term is
// enabled the bias weight occupies the last position.
func (lr *LogisticRegression) Weights() []float64 {
	if lr.weights == nil {
		return nil
	}
	weights := make([]float64, len(lr.weights))
	copy(weights, lr.weights)
	return weights
}

// LossHistory returns a copy of the per-epoch training loss history.
// Its length always equals the configured epoch count after Fit.
func (lr *LogisticRegression) LossHistory() []float64 {
	if lr.lossHistory == nil {
		return nil
	}
	history := make([]float64, len(lr.lossHistory))
	copy(history, lr.lossHistory)
	return history
}

// ValLossHistory returns a copy of the per-epoch validation loss history.
// Entries stay at zero when no validation data was supplied to Fit.
func (lr *LogisticRegression) ValLossHistory() []float64 {
	if lr.valLossHistory == nil {
		return nil
	}
	history := make([]float64, len(lr.valLossHistory))
	copy(history, lr.valLossHistory)
	return history
}

// NFeatures returns the raw feature count seen during Fit.
func (lr *LogisticRegression) NFeatures() int {
	return lr.nFeatures
}

// IsFitted returns whether the model has been fitted.
func (lr *LogisticRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// GetParams returns the model's hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"epochs":               lr.epochs,
		"learning_rate":        lr.learningRate,
		"with_bias":            lr.withBias,
		"verbose":              lr.verbose,
		"random_state":         lr.randomState,
		"regularized_gradient": lr.regularizedGradient,
	}
}

// SetParams sets the model's hyperparameters.
func (lr *LogisticRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "epochs":
			v, ok := value.(int)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be an int", value)
			}
			lr.epochs = v
		case "learning_rate":
			v, ok := value.(float64)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be a float64", value)
			}
			lr.learningRate = v
		case "with_bias":
			v, ok := value.(bool)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be a bool", value)
			}
			lr.withBias = v
		case "verbose":
			v, ok := value.(bool)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be a bool", value)
			}
			lr.verbose = v
		case "random_state":
			v, ok := value.(int64)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be an int64", value)
			}
			lr.randomState = v
			lr.rng = rand.New(rand.NewPCG(uint64(v), uint64(v)))
		case "regularized_gradient":
			v, ok := value.(bool)
			if !ok {
				return scigoErrors.NewValidationError(key, "must be a bool", value)
			}
			lr.regularizedGradient = v
		default:
			return scigoErrors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}
