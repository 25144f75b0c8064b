package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// SimCtl discovers and controls devices through xcrun simctl. It is the
// inventory collaborator: the host refreshes the device list through it and
// injects the result into runner resolution.
type SimCtl struct{}

// NewSimCtl creates a new SimCtl instance.
func NewSimCtl() *SimCtl {
	return &SimCtl{}
}

// ListDevices returns all known simulator devices across runtimes. Device
// order within each runtime follows simctl; the order of the runtime groups
// themselves is unspecified.
func (s *SimCtl) ListDevices(ctx context.Context) ([]Device, error) {
	cmd := exec.CommandContext(ctx, "xcrun", "simctl", "list", "devices", "-j")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("simctl list devices failed: %w", err)
	}

	return decodeDeviceList(out)
}

// decodeDeviceList parses the simctl device map and flattens it, attaching
// each runtime key to its devices as the runtime identifier.
func decodeDeviceList(data []byte) ([]Device, error) {
	var deviceList DeviceList
	if err := json.Unmarshal(data, &deviceList); err != nil {
		return nil, fmt.Errorf("failed to parse devices JSON: %w", err)
	}

	var devices []Device
	for runtime, devs := range deviceList.Devices {
		for _, d := range devs {
			d.RuntimeID = runtime
			parts := strings.Split(runtime, ".")
			if len(parts) > 0 {
				d.RuntimeName = parts[len(parts)-1]
			}
			devices = append(devices, d)
		}
	}

	return devices, nil
}

// ListRuntimes returns all installed simulator runtimes.
func (s *SimCtl) ListRuntimes(ctx context.Context) ([]Runtime, error) {
	cmd := exec.CommandContext(ctx, "xcrun", "simctl", "list", "runtimes", "-j")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("simctl list runtimes failed: %w", err)
	}

	var runtimeList RuntimeList
	if err := json.Unmarshal(out, &runtimeList); err != nil {
		return nil, fmt.Errorf("failed to parse runtimes JSON: %w", err)
	}

	return runtimeList.Runtimes, nil
}

// Boot boots a simulator by UDID or name.
func (s *SimCtl) Boot(ctx context.Context, deviceID string) error {
	cmd := exec.CommandContext(ctx, "xcrun", "simctl", "boot", deviceID)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Check if already booted
		if strings.Contains(stderr.String(), "current state: Booted") {
			return nil
		}
		return fmt.Errorf("simctl boot failed: %s", stderr.String())
	}
	return nil
}

// Shutdown shuts down a simulator.
func (s *SimCtl) Shutdown(ctx context.Context, deviceID string) error {
	cmd := exec.CommandContext(ctx, "xcrun", "simctl", "shutdown", deviceID)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Check if already shutdown
		if strings.Contains(stderr.String(), "current state: Shutdown") {
			return nil
		}
		return fmt.Errorf("simctl shutdown failed: %s", stderr.String())
	}
	return nil
}

// GetBooted returns the UDID of the first booted simulator, or empty if none.
func (s *SimCtl) GetBooted(ctx context.Context) (string, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return "", err
	}

	return firstBooted(devices), nil
}

func firstBooted(devices []Device) string {
	for _, d := range devices {
		if d.State == "Booted" && d.IsAvailable {
			return d.UDID
		}
	}
	return ""
}
