package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmpDir, _ := filepath.EvalSymlinks(tmpDir)
	realGot, _ := filepath.EvalSymlinks(filepath.Dir(got))
	if realGot != filepath.Join(realTmpDir, defaultDirName) {
		t.Fatalf("unexpected log dir: got=%s", realGot)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestNewReleaseWritesEventToFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Sugar().Infow("combo_stock_audit_shortfall", "combo_id", 3)
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, `"event":"combo_stock_audit_shortfall"`) || !strings.Contains(line, `"combo_id":3`) {
		t.Fatalf("unexpected log content: %s", line)
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestResolveLevel(t *testing.T) {
	if lvl := resolveLevel("warn", true); lvl.Level() != zap.WarnLevel {
		t.Fatalf("explicit level want warn got %s", lvl.Level())
	}
	if lvl := resolveLevel("", true); lvl.Level() != zap.DebugLevel {
		t.Fatalf("debug mode want debug got %s", lvl.Level())
	}
	if lvl := resolveLevel("bogus", false); lvl.Level() != zap.InfoLevel {
		t.Fatalf("fallback want info got %s", lvl.Level())
	}
}
