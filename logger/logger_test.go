package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func TestPackageFunctionsSafeBeforeInitialize(t *testing.T) {
	// The init() no-op logger must absorb calls without panicking
	Info("info before init")
	Infof("infof %d", 1)
	Infow("infow", "key", "value")
	Warn("warn before init")
	Error("error before init")
	Debugw("debugw", "key", "value")
	Cleanup()
}

func TestInitializeConsole(t *testing.T) {
	if err := Initialize(false); err != nil {
		t.Fatalf("Initialize(false) error: %v", err)
	}
	if JSONOutput {
		t.Error("JSONOutput = true after Initialize(false)")
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Initialize")
	}
}

func TestInitializeJSON(t *testing.T) {
	if err := Initialize(true); err != nil {
		t.Fatalf("Initialize(true) error: %v", err)
	}
	if !JSONOutput {
		t.Error("JSONOutput = false after Initialize(true)")
	}
}

func TestMinimalEncoderFormat(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2026, 3, 14, 13, 4, 35, 0, time.UTC),
		LoggerName: "storage",
		Message:    "Search completed",
	}
	fields := []zapcore.Field{
		zap.String("query", "smith"),
		zap.Int("matches", 7),
		zap.Int64("duration_ms", 12),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	if err != nil {
		t.Fatalf("EncodeEntry() error: %v", err)
	}

	out := stripANSI(buf.String())
	for _, want := range []string{"13:04:35", "storage", "Search completed", "smith", "7 matches", "12ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "INFO") {
		t.Errorf("info level should not be printed, got %q", out)
	}
}

func TestMinimalEncoderWarnLevel(t *testing.T) {
	encoder := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Now(),
		Message: "Review required",
	}

	buf, err := encoder.EncodeEntry(entry, nil)
	if err != nil {
		t.Fatalf("EncodeEntry() error: %v", err)
	}

	if !strings.Contains(stripANSI(buf.String()), "WARN") {
		t.Errorf("warn entry should carry WARN marker, got %q", buf.String())
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"storage", "storage"},
		{"gms.importer", "g.importer"},
		{"gms.match.linkage", "g.match.linkage"},
	}

	for _, tt := range tests {
		if got := abbreviateName(tt.in); got != tt.want {
			t.Errorf("abbreviateName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncoderCloneIndependent(t *testing.T) {
	encoder := newMinimalEncoder()
	clone := encoder.Clone()

	if clone == nil {
		t.Fatal("Clone() returned nil")
	}

	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "from clone"}
	buf, err := clone.EncodeEntry(entry, nil)
	if err != nil {
		t.Fatalf("clone EncodeEntry() error: %v", err)
	}
	if !strings.Contains(stripANSI(buf.String()), "from clone") {
		t.Error("clone should encode entries independently")
	}
}
