package material

import (
	"path/filepath"
	"strconv"
	"strings"

	"texbake/internal/fileutil"
)

// FinalName derives the normalized directory name for a completed material.
// Vendor archive names are long, mixed-case, and carry a resolution tag that
// stops mattering once the textures are processed; the thumbnail filename
// length marks where the shared identifier ends.
func FinalName(dirName string, thumbnailLen int) string {
	name := dirName
	if thumbnailLen > 0 && thumbnailLen < len(name) {
		name = name[:thumbnailLen]
	}
	name = strings.TrimSuffix(name, AcceptedExtension)
	name = strings.TrimRight(name, "-_")
	name = stripResolutionTag(name)
	name = strings.TrimRight(name, "-_")
	return strings.ToLower(name)
}

// stripResolutionTag removes a trailing "_<digits>K" segment such as "_2K"
// or "_15K". Only values that fit a single byte count as resolution tags.
func stripResolutionTag(name string) string {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return name
	}
	tag := name[idx+1:]
	if len(tag) < 2 || tag[len(tag)-1] != 'K' {
		return name
	}
	if _, err := strconv.ParseUint(tag[:len(tag)-1], 10, 8); err != nil {
		return name
	}
	return name[:idx]
}

// Finalize renames dir to its normalized material name inside the same
// parent directory and returns the resulting path.
func Finalize(dir string, thumbnailLen int) (string, error) {
	name := FinalName(filepath.Base(dir), thumbnailLen)
	target := filepath.Join(filepath.Dir(dir), name)
	if target == dir {
		return dir, nil
	}
	if err := fileutil.MoveDir(dir, target); err != nil {
		return "", Wrap(ErrIO, "finalize", "rename "+dir+" to "+target, err)
	}
	return target, nil
}
