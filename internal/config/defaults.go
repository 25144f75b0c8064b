package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"project": map[string]interface{}{
			"root": ".",
		},
		"devices": map[string]interface{}{
			"available_only": true,
			"timeout":        30,
		},
		"build": map[string]interface{}{
			"configuration":     "Debug",
			"derived_data_path": "",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"format":         FormatTable,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.xbase/config.yaml"
}
