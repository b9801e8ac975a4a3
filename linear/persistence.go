package linear

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ezoic/logreg/core/model"
	scigoErrors "github.com/ezoic/logreg/pkg/errors"
)

// LoadFromJSON loads a trained model from a JSON file produced by
// ExportToJSON.
//
// Parameters:
//   - filename: Path to the JSON file
//
// Returns:
//   - error: Loading error
//
// Example:
//
//	clf := NewLogisticRegression()
//	err := clf.LoadFromJSON("model.json")
func (lr *LogisticRegression) LoadFromJSON(filename string) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.LoadFromJSON")
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return lr.LoadFromJSONReader(file)
}

// LoadFromJSONReader loads a trained model from a Reader containing the JSON
// persistence format.
func (lr *LogisticRegression) LoadFromJSONReader(r io.Reader) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.LoadFromJSONReader")

	envelope, err := model.LoadModelFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	params, err := model.LoadLogisticRegressionParams(envelope)
	if err != nil {
		return fmt.Errorf("failed to load logistic regression params: %w", err)
	}

	lr.nFeatures = params.NFeatures
	lr.withBias = params.WithBias
	lr.epochs = params.Epochs
	lr.learningRate = params.LearningRate

	lr.weights = make([]float64, len(params.Weights))
	copy(lr.weights, params.Weights)

	lr.State.SetFitted()
	// Sample count is not available when loading from file
	lr.State.SetDimensions(lr.nFeatures, 0)

	return nil
}

// ExportToJSON exports the trained model to a JSON file.
//
// Parameters:
//   - filename: Output filename
//
// Returns:
//   - error: Error if export fails
func (lr *LogisticRegression) ExportToJSON(filename string) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.ExportToJSON")
	if !lr.State.IsFitted() {
		return scigoErrors.NewNotFittedError("LogisticRegression", "ExportToJSON")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return lr.ExportToJSONWriter(file)
}

// ExportToJSONWriter exports the trained model to a Writer in the JSON
// persistence format.
func (lr *LogisticRegression) ExportToJSONWriter(w io.Writer) (err error) {
	defer scigoErrors.Recover(&err, "LogisticRegression.ExportToJSONWriter")
	if !lr.State.IsFitted() {
		return scigoErrors.NewNotFittedError("LogisticRegression", "ExportToJSONWriter")
	}

	params := model.LogisticRegressionParams{
		Weights:      lr.Weights(),
		WithBias:     lr.withBias,
		NFeatures:    lr.nFeatures,
		Epochs:       lr.epochs,
		LearningRate: lr.learningRate,
	}

	envelope := model.Model{
		ModelSpec: model.ModelSpec{
			Name:          "LogisticRegression",
			FormatVersion: "1.0",
		},
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	envelope.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&envelope); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	return nil
}
