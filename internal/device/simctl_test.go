package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deviceListJSON = `{
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.iOS-17-0": [
      {
        "udid": "AAAA-1111",
        "name": "iPhone 15",
        "state": "Shutdown",
        "isAvailable": true,
        "deviceTypeIdentifier": "com.apple.CoreSimulator.SimDeviceType.iPhone-15"
      },
      {
        "udid": "BBBB-2222",
        "name": "iPad Pro",
        "state": "Booted",
        "isAvailable": false,
        "availabilityError": "runtime profile not found"
      }
    ],
    "com.apple.CoreSimulator.SimRuntime.watchOS-10-0": [
      {
        "udid": "CCCC-3333",
        "name": "Apple Watch Ultra",
        "state": "Shutdown",
        "isAvailable": true
      }
    ]
  }
}`

func TestDecodeDeviceList(t *testing.T) {
	devices, err := decodeDeviceList([]byte(deviceListJSON))
	require.NoError(t, err)
	require.Len(t, devices, 3)

	byUDID := make(map[string]Device)
	for _, d := range devices {
		byUDID[d.UDID] = d
	}

	iphone, ok := byUDID["AAAA-1111"]
	require.True(t, ok)
	assert.Equal(t, "iPhone 15", iphone.Name)
	assert.Equal(t, "com.apple.CoreSimulator.SimRuntime.iOS-17-0", iphone.RuntimeID)
	assert.Equal(t, "iOS-17-0", iphone.RuntimeName)
	assert.True(t, iphone.IsAvailable)

	watch, ok := byUDID["CCCC-3333"]
	require.True(t, ok)
	assert.Equal(t, "com.apple.CoreSimulator.SimRuntime.watchOS-10-0", watch.RuntimeID)
}

func TestDecodeDeviceListPreservesOrderWithinRuntime(t *testing.T) {
	devices, err := decodeDeviceList([]byte(deviceListJSON))
	require.NoError(t, err)

	// Devices within one runtime keep their simctl order.
	var ios []string
	for _, d := range devices {
		if d.RuntimeName == "iOS-17-0" {
			ios = append(ios, d.UDID)
		}
	}
	assert.Equal(t, []string{"AAAA-1111", "BBBB-2222"}, ios)
}

func TestDecodeDeviceListRejectsBadJSON(t *testing.T) {
	_, err := decodeDeviceList([]byte(`{"devices": [`))
	assert.Error(t, err)
}

func TestFirstBooted(t *testing.T) {
	devices := []Device{
		{UDID: "A1", State: "Shutdown", IsAvailable: true},
		{UDID: "B1", State: "Booted", IsAvailable: false},
		{UDID: "C1", State: "Booted", IsAvailable: true},
	}

	// Unavailable devices are skipped even when booted.
	assert.Equal(t, "C1", firstBooted(devices))
	assert.Equal(t, "", firstBooted(devices[:2]))
}

func TestAvailable(t *testing.T) {
	devices, err := decodeDeviceList([]byte(deviceListJSON))
	require.NoError(t, err)

	usable := Available(devices)
	assert.Len(t, usable, 2)
	for _, d := range usable {
		assert.True(t, d.IsAvailable)
	}
}
