package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
		if _, err := ParseLevel(level); err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", level, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("ParseLevel(%q) succeeded, want error", "loud")
	}
}

func TestLogLevel(t *testing.T) {
	defer func() { _ = SetLogLevel("info") }()

	var buf bytes.Buffer
	logger := NewWithDest(&buf, "test")

	if err := SetLogLevel("warn"); err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "test") {
		t.Errorf("logger name missing: %q", out)
	}
}

func TestPackageLogLevel(t *testing.T) {
	defer func() {
		_ = SetLogLevel("info")
		mut.Lock()
		delete(packageLevels, "logging")
		mut.Unlock()
	}()

	var buf bytes.Buffer
	logger := NewWithDest(&buf, "test")

	if err := SetLogLevel("error"); err != nil {
		t.Fatal(err)
	}
	if err := SetPackageLogLevel("logging", "debug"); err != nil {
		t.Fatal(err)
	}
	logger.Debugf("value is %d", 42)
	if !strings.Contains(buf.String(), "value is 42") {
		t.Errorf("package level not applied: %q", buf.String())
	}
}

func BenchmarkWrappedLoggerWithPackage(b *testing.B) {
	_ = SetLogLevel("error")
	_ = SetPackageLogLevel("foo", "error")
	logger := New("test")

	for i := 0; i < b.N; i++ {
		logger.Info("test")
	}
}
