package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ezoic/logreg/pkg/errors"
)

// ModelSpec holds the metadata of a persisted model.
type ModelSpec struct {
	Name          string `json:"name"`           // Model name (e.g. "LogisticRegression")
	FormatVersion string `json:"format_version"` // Persistence format version
}

// LogisticRegressionParams holds the persisted parameters of a trained
// logistic regression model. When WithBias is true the last weight is the
// bias weight, matching the appended constant feature column.
type LogisticRegressionParams struct {
	Weights      []float64 `json:"weights"`       // Learned weights
	WithBias     bool      `json:"with_bias"`     // Whether a bias column was appended during fit
	NFeatures    int       `json:"n_features"`    // Number of raw (unaugmented) features
	Epochs       int       `json:"epochs"`        // Configured epoch count
	LearningRate float64   `json:"learning_rate"` // Configured learning rate
}

// Model is the JSON envelope for a persisted model: metadata plus
// model-specific parameters.
type Model struct {
	ModelSpec ModelSpec       `json:"model_spec"`
	Params    json.RawMessage `json:"params"`
}

// LoadModelFromFile loads a persisted model envelope from a JSON file.
func LoadModelFromFile(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return LoadModelFromReader(file)
}

// LoadModelFromReader loads a persisted model envelope from a Reader.
func LoadModelFromReader(r io.Reader) (*Model, error) {
	var m Model
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if m.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadModel", "format_version is required")
	}

	if m.ModelSpec.FormatVersion != "1.0" {
		return nil, errors.NewValueError("LoadModel",
			fmt.Sprintf("unsupported format version: %s", m.ModelSpec.FormatVersion))
	}

	if m.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadModel", "model name is required")
	}

	return &m, nil
}

// LoadLogisticRegressionParams extracts logistic regression parameters from
// a persisted model envelope.
func LoadLogisticRegressionParams(m *Model) (*LogisticRegressionParams, error) {
	if m.ModelSpec.Name != "LogisticRegression" {
		return nil, errors.NewValueError("LoadLogisticRegressionParams",
			fmt.Sprintf("expected LogisticRegression model, got %s", m.ModelSpec.Name))
	}

	var params LogisticRegressionParams
	if err := json.Unmarshal(m.Params, &params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}

	if len(params.Weights) == 0 {
		return nil, errors.NewValueError("LoadLogisticRegressionParams", "weights are required")
	}
	if params.NFeatures <= 0 {
		return nil, errors.NewValueError("LoadLogisticRegressionParams", "n_features must be positive")
	}

	expected := params.NFeatures
	if params.WithBias {
		expected++
	}
	if len(params.Weights) != expected {
		return nil, errors.NewDimensionError("LoadLogisticRegressionParams", expected, len(params.Weights), 1)
	}

	return &params, nil
}
