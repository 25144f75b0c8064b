package project

import (
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ManifestName is the xcodegen project manifest file.
const ManifestName = "project.yml"

// Load reads the project manifest from root and builds the Project model.
// Target platforms may be declared as a single string or a list:
//
//	targets:
//	  App:
//	    platform: [iOS, macOS]
//	  Widget:
//	    platform: iOS
func Load(root string) (*Project, error) {
	path := filepath.Join(root, ManifestName)

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load project manifest %s: %w", path, err)
	}

	p := &Project{
		Name:    k.String("name"),
		Root:    root,
		Targets: make(map[string]Target),
	}
	if p.Name == "" {
		p.Name = filepath.Base(root)
	}

	raw, ok := k.Get("targets").(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("project manifest %s declares no targets", path)
	}

	for name, v := range raw {
		def, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("target %s: malformed definition", name)
		}

		platforms, err := parsePlatforms(def["platform"])
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", name, err)
		}

		p.Targets[name] = Target{Platforms: platforms}
	}

	return p, nil
}

// parsePlatforms normalizes the platform declaration into an ordered slice.
func parsePlatforms(v interface{}) ([]string, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		if value == "" {
			return nil, fmt.Errorf("empty platform value")
		}
		return []string{value}, nil
	case []interface{}:
		platforms := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("platform entries must be non-empty strings, got %v", item)
			}
			platforms = append(platforms, s)
		}
		return platforms, nil
	default:
		return nil, fmt.Errorf("platform must be a string or a list, got %T", v)
	}
}
