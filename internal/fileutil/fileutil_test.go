package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFilePreservesContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	payload := []byte("channel data")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("destination content = %q, want %q", got, payload)
	}
}

func TestMoveFileRemovesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	dst := filepath.Join(dir, "color.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
}

func TestMoveDirRenames(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "Metal013_2K-PNG")
	dst := filepath.Join(base, "metal013")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "color.png"), []byte("c"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := MoveDir(src, dst); err != nil {
		t.Fatalf("move dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "color.png")); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source dir should be gone, stat err = %v", err)
	}
}

func TestMoveFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := MoveFile(filepath.Join(dir, "absent"), filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
