package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingFileWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.log")

	w, err := NewRotatingFileWriter(RotationConfig{
		Filename:   path,
		MaxSize:    1, // 1 MB
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("NewRotatingFileWriter failed: %v", err)
	}
	defer w.Close()

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	// The second and third writes each force a rotation first.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("active log file missing: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("rotated backup missing: %v", err)
	}
}

func TestRotatingFileWriterRequiresFilename(t *testing.T) {
	if _, err := NewRotatingFileWriter(RotationConfig{}); err == nil {
		t.Error("expected error for empty filename")
	}
}
