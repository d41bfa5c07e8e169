package material

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"texbake/internal/logging"
	"texbake/internal/texture"
)

// Result describes one completed material directory.
type Result struct {
	// Dir is the final directory path after renaming.
	Dir string
	// Name is the normalized material name (the final directory basename).
	Name string
	// Outputs lists the files kept in the material directory.
	Outputs []string
	// Packed reports whether a combined metalness/roughness map was written.
	Packed bool
}

// Materializer processes extracted texture directories.
type Materializer struct {
	logger *slog.Logger
}

// New constructs a materializer. A nil logger is replaced with a no-op one.
func New(logger *slog.Logger) *Materializer {
	return &Materializer{logger: logging.NewComponentLogger(logger, "materializer")}
}

// Materialize turns the extracted directory dir into a finished material.
// On failure the directory is left partially processed; no rollback is
// attempted.
func (m *Materializer) Materialize(ctx context.Context, dir string) (*Result, error) {
	logger := logging.WithContext(ctx, m.logger)

	scan, err := ScanDir(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("directory scanned",
		logging.Int("eligible", len(scan.Files)),
		logging.String("prefix", scan.Prefix))

	// Deletions are collected here and executed last, after every per-file
	// step has succeeded.
	toDelete := append([]string{}, scan.Discard...)
	manifest := NewManifest()
	buffered := map[texture.Role]string{}
	claimed := map[string]string{}
	result := &Result{}

	for _, path := range scan.Files {
		suffix := scan.Suffix(path)
		bake, class := texture.Classify(suffix)

		switch class {
		case texture.ClassIndependent:
			outName := bake.Output + AcceptedExtension
			if prev, ok := claimed[outName]; ok {
				return nil, Wrap(ErrDuplicateOutput, "classify",
					fmt.Sprintf("%s and %s both resolve to %s", prev, path, outName), nil)
			}
			claimed[outName] = path

			manifest.Add(bake.ConfigLines...)
			if err := m.emitIndependent(logger, path, filepath.Join(dir, outName), bake, &toDelete); err != nil {
				return nil, err
			}
			result.Outputs = append(result.Outputs, outName)

		case texture.ClassDependent:
			// Both dependent roles feed the packer once all files are seen.
			buffered[bake.Role] = path
			toDelete = append(toDelete, path)

		default:
			logger.Debug("unrecognized suffix, scheduling deletion",
				logging.String("file", filepath.Base(path)),
				logging.String("suffix", suffix))
			toDelete = append(toDelete, path)
		}
	}

	packed, err := m.pack(logger, dir, buffered, manifest)
	if err != nil {
		return nil, err
	}
	if packed {
		result.Packed = true
		result.Outputs = append(result.Outputs, texture.PackedOutputName)
	}

	if err := manifest.WriteFile(dir); err != nil {
		return nil, err
	}
	result.Outputs = append(result.Outputs, ManifestName)

	for _, path := range toDelete {
		if err := os.Remove(path); err != nil {
			return nil, Wrap(ErrIO, "cleanup", "remove "+path, err)
		}
	}

	finalDir, err := Finalize(dir, scan.ThumbnailLen)
	if err != nil {
		return nil, err
	}
	result.Dir = finalDir
	result.Name = filepath.Base(finalDir)

	logger.Info("material ready",
		logging.String(logging.FieldMaterial, result.Name),
		logging.Int("outputs", len(result.Outputs)),
		logging.Bool("packed", result.Packed))
	return result, nil
}

// emitIndependent renames or rewrites one independently processed texture.
// When a conversion is needed the original is rewritten under the output
// name and scheduled for deletion; otherwise a plain rename suffices.
func (m *Materializer) emitIndependent(logger *slog.Logger, path, outPath string, bake texture.Bake, toDelete *[]string) error {
	enc, err := texture.SniffFileEncoding(path)
	if err != nil {
		return Wrap(ErrIO, "inspect", "read encoding of "+path, err)
	}

	target, unknown := texture.NormalizeTarget(enc, bake.Required)
	if unknown {
		logger.Warn("unrecognized pixel encoding left unchanged",
			logging.String("file", filepath.Base(path)),
			logging.String("encoding", enc.String()))
	}
	if target == texture.EncodingNone {
		if err := os.Rename(path, outPath); err != nil {
			return Wrap(ErrIO, "rename", path+" to "+outPath, err)
		}
		return nil
	}

	img, err := texture.LoadPNG(path)
	if err != nil {
		return Wrap(ErrIO, "decode", path, err)
	}
	converted, ok := texture.Convert(img, target)
	if !ok {
		// No stored form for the target; keep the image as decoded.
		logger.Warn("conversion target unsupported, keeping original encoding",
			logging.String("file", filepath.Base(path)),
			logging.String("target", target.String()))
		if err := os.Rename(path, outPath); err != nil {
			return Wrap(ErrIO, "rename", path+" to "+outPath, err)
		}
		return nil
	}
	if err := texture.SavePNG(outPath, converted); err != nil {
		return Wrap(ErrIO, "encode", outPath, err)
	}
	*toDelete = append(*toDelete, path)
	logger.Debug("texture converted",
		logging.String("file", filepath.Base(path)),
		logging.String("from", enc.String()),
		logging.String("to", target.String()))
	return nil
}

// pack consumes the buffered dependent-role files and writes the combined
// map when the case table calls for one.
func (m *Materializer) pack(logger *slog.Logger, dir string, buffered map[texture.Role]string, manifest *Manifest) (bool, error) {
	metalPath, hasMetal := buffered[texture.RoleMetalness]
	roughPath, hasRough := buffered[texture.RoleRoughness]

	switch {
	case !hasMetal && !hasRough:
		return false, nil

	case hasMetal && !hasRough:
		return false, Wrap(ErrIncompleteMaterial, "pack",
			"metalness map "+metalPath+" has no roughness map", nil)

	case !hasMetal && hasRough:
		rough, err := texture.LoadPNG(roughPath)
		if err != nil {
			return false, Wrap(ErrIO, "decode", roughPath, err)
		}
		manifest.Add("rough = 1.0")
		packed := texture.PackRoughness(rough)
		if err := texture.SavePNG(filepath.Join(dir, texture.PackedOutputName), packed); err != nil {
			return false, Wrap(ErrIO, "encode", texture.PackedOutputName, err)
		}
		logger.Debug("packed roughness-only map")
		return true, nil

	default:
		metal, err := texture.LoadPNG(metalPath)
		if err != nil {
			return false, Wrap(ErrIO, "decode", metalPath, err)
		}
		rough, err := texture.LoadPNG(roughPath)
		if err != nil {
			return false, Wrap(ErrIO, "decode", roughPath, err)
		}
		manifest.Add("metal = 1.0", "rough = 1.0")
		packed, err := texture.PackMetalRough(metal, rough)
		if err != nil {
			return false, Wrap(ErrDimensionMismatch, "pack", "fuse metalness and roughness", err)
		}
		if err := texture.SavePNG(filepath.Join(dir, texture.PackedOutputName), packed); err != nil {
			return false, Wrap(ErrIO, "encode", texture.PackedOutputName, err)
		}
		logger.Debug("packed metalness and roughness maps")
		return true, nil
	}
}
