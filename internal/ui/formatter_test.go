package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/runner"
)

func sampleEntries() []runner.TargetRunnerEntry {
	return []runner.TargetRunnerEntry{
		{
			Name: "App_ios", Target: "App", Platform: "ios",
			Runners: []runner.Runner{{Name: "iPhone 15", UDID: "AAAA-1111"}},
		},
		{
			Name: "Widget", Target: "Widget", Platform: "ios",
		},
	}
}

func TestFormatEntriesPlain(t *testing.T) {
	f := NewFormatter(false)
	out := f.FormatEntries(sampleEntries())

	assert.Contains(t, out, "App_ios  (App / ios)")
	assert.Contains(t, out, "iPhone 15  AAAA-1111")
	assert.Contains(t, out, "no compatible device")
}

func TestFormatDevicesPlain(t *testing.T) {
	f := NewFormatter(false)
	out := f.FormatDevices([]device.Device{
		{Name: "iPhone 15", UDID: "AAAA-1111", RuntimeName: "iOS-17-0", State: "Shutdown", IsAvailable: true},
		{Name: "iPad", UDID: "BBBB-2222", RuntimeName: "iOS-17-0", State: "Shutdown"},
	})

	assert.Contains(t, out, "iPhone 15  AAAA-1111  iOS-17-0 Shutdown")
	assert.Contains(t, out, "iPad  BBBB-2222  iOS-17-0 unavailable")
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "Demo", NewFormatter(false).FormatHeader("Demo"))
	// Styled output still carries the text even when the terminal strips
	// color.
	assert.Contains(t, NewFormatter(true).FormatHeader("Demo"), "Demo")
}

func TestFormatErrorPlain(t *testing.T) {
	f := NewFormatter(false)
	assert.Equal(t, "error: boom", f.FormatError(errors.New("boom")))
}

func TestEntriesMarkdown(t *testing.T) {
	doc := EntriesMarkdown("Demo", sampleEntries())

	assert.Contains(t, doc, "# Demo runners")
	assert.Contains(t, doc, "## App_ios")
	assert.Contains(t, doc, "| iPhone 15 | `AAAA-1111` |")
	assert.Contains(t, doc, "_no compatible device_")
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(sampleEntries())
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "App_ios"`)
	assert.Contains(t, out, `"udid": "AAAA-1111"`)
}
