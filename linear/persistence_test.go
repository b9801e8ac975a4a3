package linear

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/logreg/pkg/errors"
)

func TestLogisticRegression_JSONRoundTrip(t *testing.T) {
	X, y := blobDataset(40)

	trained := NewLogisticRegression(WithEpochs(100), WithRandomState(21))
	require.NoError(t, trained.Fit(X, y))

	var buf bytes.Buffer
	require.NoError(t, trained.ExportToJSONWriter(&buf))

	restored := NewLogisticRegression()
	require.NoError(t, restored.LoadFromJSONReader(&buf))

	assert.True(t, restored.IsFitted())
	assert.Equal(t, trained.Weights(), restored.Weights())

	wantPreds, err := trained.Predict(X)
	require.NoError(t, err)
	gotPreds, err := restored.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(wantPreds, gotPreds), "restored model must predict identically")

	wantProbas, err := trained.PredictProba(X)
	require.NoError(t, err)
	gotProbas, err := restored.PredictProba(X)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(wantProbas, gotProbas, 1e-15))
}

func TestLogisticRegression_JSONRoundTripFile(t *testing.T) {
	X, y := andDataset()

	trained := NewLogisticRegression(WithEpochs(200), WithRandomState(7))
	require.NoError(t, trained.Fit(X, y))

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, trained.ExportToJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"LogisticRegression"`)
	assert.Contains(t, string(data), `"1.0"`)

	restored := NewLogisticRegression()
	require.NoError(t, restored.LoadFromJSON(path))
	assert.Equal(t, trained.Weights(), restored.Weights())
}

func TestLogisticRegression_ExportBeforeFit(t *testing.T) {
	clf := NewLogisticRegression()

	var buf bytes.Buffer
	err := clf.ExportToJSONWriter(&buf)
	require.Error(t, err)

	var notFitted *scigoErrors.NotFittedError
	require.True(t, scigoErrors.As(err, &notFitted))
	assert.Zero(t, buf.Len(), "nothing may be written for an unfitted model")
}

func TestLogisticRegression_LoadRejectsBadEnvelope(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "wrong format version",
			json: `{"model_spec":{"name":"LogisticRegression","format_version":"2.0"},"params":{}}`,
		},
		{
			name: "missing model name",
			json: `{"model_spec":{"format_version":"1.0"},"params":{}}`,
		},
		{
			name: "weights length inconsistent with feature count",
			json: `{"model_spec":{"name":"LogisticRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2],"with_bias":true,"n_features":2,"epochs":100,"learning_rate":0.1}}`,
		},
		{
			name: "malformed JSON",
			json: `{"model_spec":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := NewLogisticRegression()
			err := clf.LoadFromJSONReader(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.False(t, clf.IsFitted())
		})
	}
}
