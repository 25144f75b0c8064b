// Package runner resolves which devices from the inventory can run each of a
// project's targets.
package runner

import (
	"fmt"
	"regexp"

	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/project"
)

// Runner is a runnable destination for a target, projected from a Device.
type Runner struct {
	Name string `json:"name"`
	UDID string `json:"udid"`
}

// TargetRunnerEntry holds the runners resolved for one (target, platform)
// pair. Name is a display label only: multi-platform targets yield
// <target>_<platform> names, which can collide with a literally named target
// elsewhere in the project. Target and Platform are the structured key.
type TargetRunnerEntry struct {
	Name     string   `json:"name"`
	Target   string   `json:"target"`
	Platform string   `json:"platform"`
	Runners  []Runner `json:"runners"`
}

// Match returns the devices compatible with platform, in inventory order.
//
// The platform identifier is interpreted as a case-insensitive regular
// expression tested against each device's runtime identifier, not as an exact
// literal: "ios" matches "com.apple.CoreSimulator.SimRuntime.iOS-17-0". A
// platform value containing pattern metacharacters keeps its pattern
// semantics. An empty result is a valid outcome, not an error.
func Match(platform string, devices []device.Device) ([]Runner, error) {
	re, err := regexp.Compile("(?i)" + platform)
	if err != nil {
		return nil, fmt.Errorf("invalid platform pattern %q: %w", platform, err)
	}

	runners := []Runner{}
	for _, d := range devices {
		if d.RuntimeID == "" {
			// Corrupt inventory must be distinguishable from "no compatible
			// device exists", so a missing runtime identifier is an error.
			return nil, &InventoryError{Name: d.Name, UDID: d.UDID}
		}
		if re.MatchString(d.RuntimeID) {
			runners = append(runners, Runner{Name: d.Name, UDID: d.UDID})
		}
	}

	return runners, nil
}

// Resolve produces one TargetRunnerEntry per (target, platform) pair in the
// project, matching each platform against the supplied device inventory.
//
// Single-platform targets keep their bare name; multi-platform targets expand
// to one entry per declared platform, in declaration order. Target iteration
// order across the project map is unspecified. Either the complete entry
// sequence is returned or an error naming the offending target or device.
func Resolve(p *project.Project, devices []device.Device) ([]TargetRunnerEntry, error) {
	entries := make([]TargetRunnerEntry, 0, len(p.Targets))

	for name, target := range p.Targets {
		if len(target.Platforms) == 0 {
			return nil, &InvalidTargetError{Target: name}
		}

		single := len(target.Platforms) == 1
		for _, platform := range target.Platforms {
			runners, err := Match(platform, devices)
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", name, err)
			}

			entryName := name
			if !single {
				entryName = name + "_" + platform
			}
			entries = append(entries, TargetRunnerEntry{
				Name:     entryName,
				Target:   name,
				Platform: platform,
				Runners:  runners,
			})
		}
	}

	return entries, nil
}
