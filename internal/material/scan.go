package material

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// AcceptedExtension is the one raster format texbake processes. Files with
// any other extension are extraneous and scheduled for deletion.
const AcceptedExtension = ".png"

// Scan holds the classified view of an extracted directory before any file
// is touched.
type Scan struct {
	// Files are the eligible texture paths, thumbnail excluded, in
	// directory-iteration order.
	Files []string
	// Prefix is the longest common leading substring of the remaining file
	// stems. It may be empty.
	Prefix string
	// ThumbnailLen is the filename length of the excluded thumbnail, used
	// later to derive the final directory name.
	ThumbnailLen int
	// Discard lists files already known to be extraneous: wrong extension
	// and the thumbnail itself.
	Discard []string
}

// ScanDir builds the candidate file list for dir. The shared prefix is
// computed from original filenames only, before anything is renamed.
func ScanDir(dir string) (*Scan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Wrap(ErrIO, "scan", fmt.Sprintf("read directory %s", dir), err)
	}

	scan := &Scan{}
	shortestIndex := 0
	shortestLen := -1

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			return nil, Wrap(ErrInvalidLayout, "scan", fmt.Sprintf("unexpected subdirectory %s", path), nil)
		}
		if !utf8.ValidString(name) {
			return nil, Wrap(ErrInvalidFileName, "scan", fmt.Sprintf("undecodable file name in %s", dir), nil)
		}
		if filepath.Ext(name) != AcceptedExtension {
			scan.Discard = append(scan.Discard, path)
			continue
		}
		if shortestLen < 0 || len(name) < shortestLen {
			shortestIndex = len(scan.Files)
			shortestLen = len(name)
		}
		scan.Files = append(scan.Files, path)
	}

	if len(scan.Files) == 0 {
		return nil, Wrap(ErrNoEligibleFiles, "scan", fmt.Sprintf("no %s files in %s", AcceptedExtension, dir), nil)
	}

	// The file with the shortest name is the vendor thumbnail.
	thumb := scan.Files[shortestIndex]
	scan.Files = append(scan.Files[:shortestIndex], scan.Files[shortestIndex+1:]...)
	scan.Discard = append(scan.Discard, thumb)
	scan.ThumbnailLen = len(filepath.Base(thumb))

	if len(scan.Files) == 0 {
		return nil, Wrap(ErrNoEligibleFiles, "scan", fmt.Sprintf("only a thumbnail in %s", dir), nil)
	}

	scan.Prefix = sharedPrefix(scan.Files)
	return scan, nil
}

// Suffix returns the role-bearing part of path's stem: the stem minus the
// shared prefix.
func (s *Scan) Suffix(path string) string {
	stem := fileStem(path)
	if len(s.Prefix) > len(stem) {
		return ""
	}
	return stem[len(s.Prefix):]
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sharedPrefix reduces the stems of paths pairwise with commonPrefix. The
// reduction is commutative, so iteration order does not matter.
func sharedPrefix(paths []string) string {
	prefix := fileStem(paths[0])
	for _, path := range paths[1:] {
		prefix = commonPrefix(prefix, fileStem(path))
	}
	return prefix
}

func commonPrefix(a, b string) string {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:limit]
}
