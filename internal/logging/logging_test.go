package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewDefaultLevel(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")

	logger := New()
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level by default, got %v", logger.GetLevel())
	}
}

func TestNewRespectsLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")

	logger := New()
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %v", logger.GetLevel())
	}
}

func TestNewIgnoresInvalidLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "chatty")
	defer os.Unsetenv("LOG_LEVEL")

	logger := New()
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected info level for an unknown LOG_LEVEL, got %v", logger.GetLevel())
	}
}

func TestNewJSONFormat(t *testing.T) {
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_FORMAT")

	logger := New()

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.WithField("layer", "app").Info("exported")

	out := buf.String()
	for _, field := range []string{`"message":"exported"`, `"level":"info"`, `"layer":"app"`, `"timestamp"`} {
		if !strings.Contains(out, field) {
			t.Errorf("Expected JSON log to contain %s, got %s", field, out)
		}
	}
}
