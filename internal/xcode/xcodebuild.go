// Package xcode wraps xcodebuild invocations driven by a resolved runner.
package xcode

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tami5/xbase/internal/runner"
)

// XcodeBuild provides methods to interact with xcodebuild commands.
type XcodeBuild struct{}

// NewXcodeBuild creates a new XcodeBuild instance.
func NewXcodeBuild() *XcodeBuild {
	return &XcodeBuild{}
}

// BuildOptions contains options for building an Xcode project.
type BuildOptions struct {
	ProjectPath     string         // Path to .xcodeproj or directory containing it
	WorkspacePath   string         // Path to .xcworkspace (takes precedence over ProjectPath)
	Scheme          string         // Build scheme name
	Configuration   string         // Build configuration (Debug, Release), default: Debug
	Runner          *runner.Runner // Destination device; omitted when nil
	DerivedDataPath string         // Custom derived data path
}

// Destination formats the xcodebuild -destination value for a resolved
// runner. Addressing the device by UDID sidesteps name ambiguity when two
// simulators share a display name.
func Destination(r runner.Runner) string {
	return fmt.Sprintf("id=%s", r.UDID)
}

// buildArgs assembles the xcodebuild argument list for opts.
func buildArgs(opts BuildOptions) ([]string, error) {
	args := []string{}

	if opts.WorkspacePath != "" {
		args = append(args, "-workspace", opts.WorkspacePath)
	} else if opts.ProjectPath != "" {
		projectPath := opts.ProjectPath
		if !strings.HasSuffix(projectPath, ".xcodeproj") {
			matches, err := filepath.Glob(filepath.Join(projectPath, "*.xcodeproj"))
			if err != nil || len(matches) == 0 {
				return nil, fmt.Errorf("no .xcodeproj found in %s", projectPath)
			}
			projectPath = matches[0]
		}
		args = append(args, "-project", projectPath)
	} else {
		return nil, fmt.Errorf("either ProjectPath or WorkspacePath must be specified")
	}

	if opts.Scheme == "" {
		return nil, fmt.Errorf("scheme is required")
	}
	args = append(args, "-scheme", opts.Scheme)

	config := opts.Configuration
	if config == "" {
		config = "Debug"
	}
	args = append(args, "-configuration", config)

	if opts.Runner != nil {
		args = append(args, "-destination", Destination(*opts.Runner))
	}

	if opts.DerivedDataPath != "" {
		args = append(args, "-derivedDataPath", opts.DerivedDataPath)
	}

	return append(args, "build"), nil
}

// Build builds an Xcode project for the destination in opts and returns the
// raw xcodebuild output lines.
func (x *XcodeBuild) Build(ctx context.Context, opts BuildOptions) ([]string, error) {
	args, err := buildArgs(opts)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "xcodebuild", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xcodebuild failed: %s\n%s", err.Error(), stderr.String())
	}

	return strings.Split(stdout.String(), "\n"), nil
}

// cleanArgs assembles the xcodebuild clean argument list for opts.
func cleanArgs(opts BuildOptions) []string {
	args := []string{}

	if opts.WorkspacePath != "" {
		args = append(args, "-workspace", opts.WorkspacePath)
	} else if opts.ProjectPath != "" {
		args = append(args, "-project", opts.ProjectPath)
	}

	if opts.Scheme != "" {
		args = append(args, "-scheme", opts.Scheme)
	}

	return append(args, "clean")
}

// Clean cleans the build artifacts.
func (x *XcodeBuild) Clean(ctx context.Context, opts BuildOptions) error {
	args := cleanArgs(opts)

	cmd := exec.CommandContext(ctx, "xcodebuild", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xcodebuild clean failed: %s", stderr.String())
	}
	return nil
}

// ListSchemes lists available schemes in a project or workspace.
func (x *XcodeBuild) ListSchemes(ctx context.Context, projectPath string) ([]string, error) {
	args := []string{"-list", "-json"}

	if strings.HasSuffix(projectPath, ".xcworkspace") {
		args = append(args, "-workspace", projectPath)
	} else {
		if !strings.HasSuffix(projectPath, ".xcodeproj") {
			matches, err := filepath.Glob(filepath.Join(projectPath, "*.xcodeproj"))
			if err != nil || len(matches) == 0 {
				matches, err = filepath.Glob(filepath.Join(projectPath, "*.xcworkspace"))
				if err != nil || len(matches) == 0 {
					return nil, fmt.Errorf("no Xcode project found in %s", projectPath)
				}
				args = append(args, "-workspace", matches[0])
			} else {
				args = append(args, "-project", matches[0])
			}
		} else {
			args = append(args, "-project", projectPath)
		}
	}

	cmd := exec.CommandContext(ctx, "xcodebuild", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("xcodebuild -list failed: %w", err)
	}

	return parseSchemes(string(out)), nil
}

// parseSchemes extracts scheme names from xcodebuild -list -json output.
func parseSchemes(out string) []string {
	var schemes []string
	inSchemes := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, `"schemes"`) {
			inSchemes = true
			continue
		}
		if inSchemes {
			if line == "]" || line == "]," {
				break
			}
			scheme := strings.Trim(line, `",`)
			if scheme != "" && scheme != "[" {
				schemes = append(schemes, scheme)
			}
		}
	}
	return schemes
}
