package model

import (
	"strings"
	"testing"
)

func TestLoadModelFromReader(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{
			name: "valid envelope",
			json: `{"model_spec":{"name":"LogisticRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2,0.3],"with_bias":true,"n_features":2,"epochs":100,"learning_rate":0.1}}`,
		},
		{
			name:    "unsupported format version",
			json:    `{"model_spec":{"name":"LogisticRegression","format_version":"0.9"},"params":{}}`,
			wantErr: true,
		},
		{
			name:    "missing model name",
			json:    `{"model_spec":{"format_version":"1.0"},"params":{}}`,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			json:    `{"model_spec"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadModelFromReader(strings.NewReader(tt.json))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadModelFromReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && m.ModelSpec.Name != "LogisticRegression" {
				t.Errorf("Name = %q", m.ModelSpec.Name)
			}
		})
	}
}

func TestLoadLogisticRegressionParams(t *testing.T) {
	valid := `{"model_spec":{"name":"LogisticRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2,0.3],"with_bias":true,"n_features":2,"epochs":100,"learning_rate":0.1}}`

	m, err := LoadModelFromReader(strings.NewReader(valid))
	if err != nil {
		t.Fatalf("LoadModelFromReader() error: %v", err)
	}

	params, err := LoadLogisticRegressionParams(m)
	if err != nil {
		t.Fatalf("LoadLogisticRegressionParams() error: %v", err)
	}
	if len(params.Weights) != 3 {
		t.Errorf("Weights length = %d, want 3", len(params.Weights))
	}
	if params.NFeatures != 2 || !params.WithBias {
		t.Errorf("unexpected params: %+v", params)
	}
}

func TestLoadLogisticRegressionParamsRejectsInconsistentWeights(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "too few weights with bias",
			json: `{"model_spec":{"name":"LogisticRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2],"with_bias":true,"n_features":2,"epochs":100,"learning_rate":0.1}}`,
		},
		{
			name: "too many weights without bias",
			json: `{"model_spec":{"name":"LogisticRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2,0.3],"with_bias":false,"n_features":2,"epochs":100,"learning_rate":0.1}}`,
		},
		{
			name: "wrong model name",
			json: `{"model_spec":{"name":"LinearRegression","format_version":"1.0"},"params":{"weights":[0.1,0.2,0.3],"with_bias":true,"n_features":2,"epochs":100,"learning_rate":0.1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LoadModelFromReader(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("LoadModelFromReader() error: %v", err)
			}
			if _, err := LoadLogisticRegressionParams(m); err == nil {
				t.Error("expected an error for inconsistent params")
			}
		})
	}
}

func TestLoadModelFromFileMissing(t *testing.T) {
	if _, err := LoadModelFromFile("does-not-exist.json"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
