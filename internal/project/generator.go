package project

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Generator identifies the tool that generates the project's xcodeproj.
type Generator string

const (
	GeneratorNone     Generator = "none"
	GeneratorXcodeGen Generator = "xcodegen"
	GeneratorTuist    Generator = "tuist"
)

// DetectGenerator identifies the generator from the project root.
func DetectGenerator(root string) Generator {
	if _, err := os.Stat(filepath.Join(root, ManifestName)); err == nil {
		return GeneratorXcodeGen
	}
	if _, err := os.Stat(filepath.Join(root, "Project.swift")); err == nil {
		return GeneratorTuist
	}
	return GeneratorNone
}

// IsGeneratorFile reports whether path is a supported generator manifest.
func IsGeneratorFile(path string) bool {
	name := filepath.Base(path)
	return name == ManifestName || name == "Project.swift"
}

// Regenerate runs the generator in root to rebuild the xcodeproj. Returns
// false when the project has no generator.
func (g Generator) Regenerate(ctx context.Context, root string) (bool, error) {
	var args []string
	switch g {
	case GeneratorNone:
		return false, nil
	case GeneratorXcodeGen:
		args = []string{"generate", "-c"}
	case GeneratorTuist:
		// --no-open prevents Xcode from being opened after generation.
		args = []string{"generate", "--no-open"}
	default:
		return false, fmt.Errorf("unknown generator: %s", g)
	}

	bin, err := exec.LookPath(string(g))
	if err != nil {
		return false, fmt.Errorf("%s not found in PATH: %w", g, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("%s generate failed: %s", g, stderr.String())
	}
	return true, nil
}
