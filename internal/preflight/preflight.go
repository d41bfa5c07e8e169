package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of one preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that path's filesystem has at least required bytes
// available.
func CheckFreeSpace(name, path string, required int64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := int64(stat.Bavail) * stat.Bsize
	if available < required {
		return Result{
			Name: name,
			Detail: fmt.Sprintf("%s (error: %d MiB available, %d MiB required)",
				path, available/(1<<20), required/(1<<20)),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB available)", path, available/(1<<20))}
}

// Run evaluates all checks for processing archives inside workDir.
// Extraction needs roughly the summed archive sizes again as free space,
// plus the configured headroom.
func Run(workDir string, archives []string, headroomMiB int64) []Result {
	results := []Result{CheckDirectoryAccess("Working directory", workDir)}

	var total int64
	for _, path := range archives {
		if info, err := os.Stat(path); err == nil {
			total += info.Size()
		}
	}
	required := total + headroomMiB*(1<<20)
	results = append(results, CheckFreeSpace("Free space", workDir, required))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
