package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrConflict marks an extraction target that already exists.
var ErrConflict = errors.New("extract conflict")

// ExtractDir returns the directory a zip at path extracts into: the zip
// path minus its extension.
func ExtractDir(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Extract unpacks the zip at zipPath into its sibling extraction directory
// and returns that directory. The target must not exist as a file or as a
// non-empty directory.
func Extract(zipPath string) (string, error) {
	dest := ExtractDir(zipPath)

	info, err := os.Stat(dest)
	switch {
	case err == nil && !info.IsDir():
		return "", fmt.Errorf("%w: %s already exists as a file", ErrConflict, dest)
	case err == nil:
		entries, readErr := os.ReadDir(dest)
		if readErr != nil {
			return "", readErr
		}
		if len(entries) > 0 {
			return "", fmt.Errorf("%w: %s already has files", ErrConflict, dest)
		}
	case os.IsNotExist(err):
		if err := os.Mkdir(dest, 0o755); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", zipPath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractFile(dest, file); err != nil {
			return "", err
		}
	}
	return dest, nil
}

func extractFile(dest string, file *zip.File) error {
	// Reject entries that would escape the extraction root.
	if !filepath.IsLocal(file.Name) {
		return fmt.Errorf("archive entry %q escapes extraction directory", file.Name)
	}
	target := filepath.Join(dest, file.Name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if dir := filepath.Dir(target); dir != dest {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %q: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("extract %q: %w", file.Name, err)
	}
	return out.Close()
}
