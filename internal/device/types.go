// Package device maintains the inventory of known simulators and physical
// devices, discovered via xcrun simctl.
package device

// Device represents one known simulator or physical device.
type Device struct {
	UDID              string `json:"udid"`
	Name              string `json:"name"`
	State             string `json:"state"`
	IsAvailable       bool   `json:"isAvailable"`
	DeviceTypeID      string `json:"deviceTypeIdentifier"`
	RuntimeID         string `json:"runtimeIdentifier,omitempty"`
	RuntimeName       string `json:"runtimeName,omitempty"`
	DataPath          string `json:"dataPath,omitempty"`
	LogPath           string `json:"logPath,omitempty"`
	AvailabilityError string `json:"availabilityError,omitempty"`
}

// DeviceList represents the JSON output from simctl list devices.
type DeviceList struct {
	Devices map[string][]Device `json:"devices"`
}

// Runtime represents a simulator runtime.
type Runtime struct {
	BuildVersion string `json:"buildversion"`
	BundlePath   string `json:"bundlePath"`
	Identifier   string `json:"identifier"`
	IsAvailable  bool   `json:"isAvailable"`
	IsInternal   bool   `json:"isInternal"`
	Name         string `json:"name"`
	Platform     string `json:"platform"`
	Version      string `json:"version"`
}

// RuntimeList represents the JSON output from simctl list runtimes.
type RuntimeList struct {
	Runtimes []Runtime `json:"runtimes"`
}

// Available filters the inventory down to devices simctl reports as usable.
func Available(devices []Device) []Device {
	var out []Device
	for _, d := range devices {
		if d.IsAvailable {
			out = append(out, d)
		}
	}
	return out
}
