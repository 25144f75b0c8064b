// Package project loads and models an Xcode project definition: its root,
// its generator, and the targets it declares.
package project

// Target represents one buildable unit in a project. A target may declare
// more than one platform for multi-platform support.
type Target struct {
	Platforms []string `json:"platforms"`
}

// Project maps target names to their definitions. It is read-only input for
// runner resolution; ownership stays with the loader.
type Project struct {
	Name    string            `json:"name"`
	Root    string            `json:"root"`
	Targets map[string]Target `json:"targets"`
}
