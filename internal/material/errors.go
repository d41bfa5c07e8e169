package material

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFileName marks a directory entry whose name is not valid UTF-8.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrInvalidLayout marks an unexpected subdirectory in the extracted directory.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrUnsupportedExtension marks a file that is not the accepted raster format.
	ErrUnsupportedExtension = errors.New("unsupported extension")
	// ErrNoEligibleFiles marks a directory with nothing to process.
	ErrNoEligibleFiles = errors.New("no eligible files")
	// ErrDimensionMismatch marks paired packing inputs of different sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrIncompleteMaterial marks a metalness map without a roughness map.
	ErrIncompleteMaterial = errors.New("incomplete material")
	// ErrDuplicateOutput marks two source files claiming the same output name.
	ErrDuplicateOutput = errors.New("duplicate output")
	// ErrIO marks filesystem or codec failures surfaced from collaborators.
	ErrIO = errors.New("io failure")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "material failure"
	}
	return strings.Join(parts, ": ")
}
