package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	cdberrors "github.com/cockroachdb/errors"
)

func TestTestLoggerCapture(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Info("Training started", SamplesKey, 100, FeaturesKey, 2)
	logger.Debug("Epoch finished", EpochKey, 1)

	if !logger.ContainsMessage("Training started") {
		t.Error("expected captured message")
	}
	if !logger.ContainsField(SamplesKey, float64(100)) {
		t.Error("expected samples field")
	}

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entries[0]["level"])
	}

	logger.Clear()
	if buffer.Len() != 0 {
		t.Error("Clear() must empty the buffer")
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, _ := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")
	logger.Error("also visible")

	if logger.ContainsMessage("hidden") {
		t.Error("messages below the level must be dropped")
	}
	if !logger.ContainsMessage("visible") {
		t.Error("messages at or above the level must be kept")
	}
}

func TestTestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	child := logger.With(ModelNameKey, "LogisticRegression")
	child.Info("Prediction completed")

	// With shares the buffer, so the parent sees the child's entries
	if !logger.ContainsField(ModelNameKey, "LogisticRegression") {
		t.Error("child logger fields must appear in captured entries")
	}
}

func TestZerologLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Info("Training completed",
		OperationKey, OperationFit,
		SamplesKey, 40,
		DurationMsKey, int64(12),
	)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["message"] != "Training completed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[OperationKey] != OperationFit {
		t.Errorf("%s = %v, want %s", OperationKey, entry[OperationKey], OperationFit)
	}
	if entry[SamplesKey] != float64(40) {
		t.Errorf("%s = %v, want 40", SamplesKey, entry[SamplesKey])
	}
}

func TestZerologLoggerErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	err := cdberrors.New("gradient blew up")
	logger.Error("Training failed", "error", err)

	out := buf.String()
	if !strings.Contains(out, "gradient blew up") {
		t.Errorf("error message missing from output: %s", out)
	}
	if !strings.Contains(out, StacktraceKey) {
		t.Errorf("stacktrace attribute missing from output: %s", out)
	}
}

func TestZerologLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	child := logger.With(ComponentKey, "linear")
	child.Info("ready")

	if !strings.Contains(buf.String(), `"ml.component":"linear"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestZerologLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	ctx := context.Background()
	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug must be disabled at info level")
	}
	if !logger.Enabled(ctx, LevelInfo) {
		t.Error("info must be enabled at info level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error must be enabled at info level")
	}
}

func TestProviderSwap(t *testing.T) {
	provider, _ := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	t.Cleanup(func() { SetProvider(NewZerologProvider()) })

	GetLoggerWithName("metrics").Info("Score computed", AccuracyKey, 0.95)

	captured := provider.GetLogger().(*TestLogger)
	if !captured.ContainsMessage("Score computed") {
		t.Error("default logger must route through the installed provider")
	}
	if !captured.ContainsField(ComponentKey, "metrics") {
		t.Error("component name must be attached")
	}
}

func TestZerologProviderSetLevel(t *testing.T) {
	provider := NewZerologProvider()
	provider.SetLevel(LevelError)

	logger := provider.GetLogger()
	if logger.Enabled(context.Background(), LevelInfo) {
		t.Error("info must be disabled after raising the level to error")
	}
}
