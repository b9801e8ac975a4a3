// Package log defines standard attribute keys for machine learning operations.
//
// Using these keys consistently enables structured log analysis and filtering
// across the library. The keys follow a hierarchical naming convention
// (e.g. "model.name", "data.samples").

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of machine learning model.
	// Example: "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "metrics", "visualization"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	// Examples: "training", "inference", "validation"
	PhaseKey = "ml.phase"
)

// Data shape and characteristics.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for debugging shape mismatches.
	FeaturesKey = "data.features"
)

// Performance and training metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy, typically in [0.0, 1.0].
	AccuracyKey = "metrics.accuracy"

	// LossKey records a loss value during training or evaluation.
	LossKey = "metrics.loss"

	// ValLossKey records the validation loss during training.
	ValLossKey = "metrics.val_loss"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"
)

// Prediction context.
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// ThresholdKey records the decision threshold used for classification.
	ThresholdKey = "preds.threshold"
)

// Hyperparameters and configuration.
const (
	// LearningRateKey records the learning rate for gradient descent.
	LearningRateKey = "hyperparams.learning_rate"

	// EpochCountKey records the configured number of epochs.
	EpochCountKey = "hyperparams.epochs"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	// Standard ML operations
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationScore        = "score"

	// Standard ML phases
	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"
)
