package linear

// Option is a function that configures LogisticRegression
type Option func(*LogisticRegression)

// WithEpochs sets the number of training epochs
func WithEpochs(epochs int) Option {
	return func(lr *LogisticRegression) {
		lr.epochs = epochs
	}
}

// WithLearningRate sets the gradient descent learning rate
func WithLearningRate(eta float64) Option {
	return func(lr *LogisticRegression) {
		lr.learningRate = eta
	}
}

// WithBias sets whether a constant bias column is appended to the features.
// Enabled by default.
func WithBias(bias bool) Option {
	return func(lr *LogisticRegression) {
		lr.withBias = bias
	}
}

// WithVerbose enables per-epoch progress logging
func WithVerbose(verbose bool) Option {
	return func(lr *LogisticRegression) {
		lr.verbose = verbose
	}
}

// WithRandomState sets the random seed used for weight initialization.
// Negative values select a non-deterministic seed.
func WithRandomState(seed int64) Option {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
	}
}

// WithRegularizedGradient sets whether the gradient step includes the
// derivative of the L2 penalty. The default is false: the penalty appears in
// the reported loss but not in the update, reproducing the historical
// behavior of this trainer.
func WithRegularizedGradient(enabled bool) Option {
	return func(lr *LogisticRegression) {
		lr.regularizedGradient = enabled
	}
}
