package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// TestZerologLogger tests the zerolog adapter against the Logger interface
func TestZerologLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerologLogger(zerolog.New(buf))

	logger.Info("fit complete", SamplesKey, 100, FeatureCountKey, 50)

	output := buf.String()
	if !strings.Contains(output, `"message":"fit complete"`) {
		t.Errorf("Expected message field in output: %s", output)
	}
	if !strings.Contains(output, `"data.samples":100`) {
		t.Errorf("Expected samples field in output: %s", output)
	}
	if !strings.Contains(output, `"features.count":50`) {
		t.Errorf("Expected feature count field in output: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("Expected info level in output: %s", output)
	}
}

// TestZerologLoggerWith tests contextual field chaining
func TestZerologLoggerWith(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerologLogger(zerolog.New(buf))

	contextLogger := logger.With(ModelNameKey, "RandomFeatureMethod")
	contextLogger.Warn("ill-conditioned system", ConditionNumberKey, 1e15)

	output := buf.String()
	if !strings.Contains(output, `"model.name":"RandomFeatureMethod"`) {
		t.Errorf("Expected contextual model name in output: %s", output)
	}
	if !strings.Contains(output, `"level":"warn"`) {
		t.Errorf("Expected warn level in output: %s", output)
	}
}

// TestZerologLoggerError tests error value serialization
func TestZerologLoggerError(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerologLogger(zerolog.New(buf))

	logger.Error("solve failed", "error", fmt.Errorf("singular system"))

	output := buf.String()
	if !strings.Contains(output, `"error":"singular system"`) {
		t.Errorf("Expected error rendered as message in output: %s", output)
	}
}

// TestZerologLoggerEnabled tests level gating through the adapter
func TestZerologLoggerEnabled(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewZerologLogger(zerolog.New(buf).Level(zerolog.InfoLevel))
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("Debug should be disabled at info level")
	}
	if !logger.Enabled(ctx, LevelInfo) {
		t.Error("Info should be enabled at info level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at info level")
	}
}

// TestUseZerologWarnings tests routing library warnings into zerolog
func TestUseZerologWarnings(t *testing.T) {
	buf := &bytes.Buffer{}
	UseZerologWarnings(zerolog.New(buf))
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewRegularizationWarning(0, 0, "zero regularization"))

	output := buf.String()
	if !strings.Contains(output, "zero regularization") {
		t.Errorf("Expected warning message in output: %s", output)
	}
	if !strings.Contains(output, `"requested":0`) {
		t.Errorf("Expected structured requested field in output: %s", output)
	}
	if !strings.Contains(output, `"type":"RegularizationWarning"`) {
		t.Errorf("Expected warning type field in output: %s", output)
	}
}
