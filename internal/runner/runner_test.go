package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tami5/xbase/internal/device"
	"github.com/tami5/xbase/internal/project"
)

func inventory() []device.Device {
	return []device.Device{
		{Name: "iPhone 14", UDID: "A1", RuntimeID: "com.apple.CoreSimulator.SimRuntime.iOS-16-0"},
		{Name: "Apple Watch", UDID: "W1", RuntimeID: "com.apple.CoreSimulator.SimRuntime.watchOS-9-0"},
		{Name: "MacBook", UDID: "B1", RuntimeID: "com.apple.macos"},
		{Name: "iPhone 15", UDID: "A2", RuntimeID: "com.apple.CoreSimulator.SimRuntime.iOS-17-0"},
	}
}

func TestMatchPreservesInventoryOrder(t *testing.T) {
	runners, err := Match("ios", inventory())
	require.NoError(t, err)
	assert.Equal(t, []Runner{
		{Name: "iPhone 14", UDID: "A1"},
		{Name: "iPhone 15", UDID: "A2"},
	}, runners)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	runners, err := Match("watchos", inventory())
	require.NoError(t, err)
	assert.Equal(t, []Runner{{Name: "Apple Watch", UDID: "W1"}}, runners)
}

func TestMatchNoMatchReturnsEmpty(t *testing.T) {
	runners, err := Match("tvos", inventory())
	require.NoError(t, err)
	assert.Empty(t, runners)
}

func TestMatchEmptyPlatformMatchesEverything(t *testing.T) {
	runners, err := Match("", inventory())
	require.NoError(t, err)
	assert.Len(t, runners, 4)
}

func TestMatchPatternSemantics(t *testing.T) {
	// The platform string is a pattern, not a literal.
	runners, err := Match("iOS-1[67]", inventory())
	require.NoError(t, err)
	assert.Len(t, runners, 2)
}

func TestMatchInvalidPattern(t *testing.T) {
	_, err := Match("ios(", inventory())
	assert.Error(t, err)
}

func TestMatchMissingRuntimeIdentifier(t *testing.T) {
	devices := inventory()
	devices[2].RuntimeID = ""

	_, err := Match("ios", devices)
	require.Error(t, err)

	var invErr *InventoryError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "B1", invErr.UDID)
}

func testProject() *project.Project {
	return &project.Project{
		Name: "Demo",
		Targets: map[string]project.Target{
			"App":    {Platforms: []string{"ios", "macos"}},
			"Widget": {Platforms: []string{"ios"}},
		},
	}
}

func entriesByName(t *testing.T, entries []TargetRunnerEntry) map[string]TargetRunnerEntry {
	t.Helper()
	byName := make(map[string]TargetRunnerEntry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	return byName
}

func TestResolveExpandsMultiPlatformTargets(t *testing.T) {
	devices := []device.Device{
		{Name: "iPhone 14", UDID: "A1", RuntimeID: "com.apple.ios-simulator"},
		{Name: "MacBook", UDID: "B1", RuntimeID: "com.apple.macos"},
	}

	entries, err := Resolve(testProject(), devices)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := entriesByName(t, entries)

	appIOS, ok := byName["App_ios"]
	require.True(t, ok)
	assert.Equal(t, "App", appIOS.Target)
	assert.Equal(t, "ios", appIOS.Platform)
	assert.Equal(t, []Runner{{Name: "iPhone 14", UDID: "A1"}}, appIOS.Runners)

	appMac, ok := byName["App_macos"]
	require.True(t, ok)
	assert.Equal(t, []Runner{{Name: "MacBook", UDID: "B1"}}, appMac.Runners)

	widget, ok := byName["Widget"]
	require.True(t, ok)
	assert.Equal(t, "Widget", widget.Target)
	assert.Equal(t, []Runner{{Name: "iPhone 14", UDID: "A1"}}, widget.Runners)
}

func TestResolveEntryCount(t *testing.T) {
	p := &project.Project{
		Targets: map[string]project.Target{
			"A": {Platforms: []string{"ios"}},
			"B": {Platforms: []string{"ios", "macos", "tvos"}},
			"C": {Platforms: []string{"watchos"}},
		},
	}

	entries, err := Resolve(p, inventory())
	require.NoError(t, err)
	// One entry per platform for multi-platform targets, one per
	// single-platform target.
	assert.Len(t, entries, 5)
}

func TestResolveSinglePlatformKeepsBareName(t *testing.T) {
	p := &project.Project{
		Targets: map[string]project.Target{
			"Widget": {Platforms: []string{"ios"}},
		},
	}

	entries, err := Resolve(p, inventory())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Widget", entries[0].Name)
}

func TestResolveEmptyInventory(t *testing.T) {
	entries, err := Resolve(testProject(), nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Empty(t, e.Runners)
	}
}

func TestResolveTargetWithoutPlatforms(t *testing.T) {
	p := &project.Project{
		Targets: map[string]project.Target{
			"Broken": {},
		},
	}

	_, err := Resolve(p, inventory())
	require.Error(t, err)

	var invalidErr *InvalidTargetError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "Broken", invalidErr.Target)
}

func TestResolvePropagatesInventoryError(t *testing.T) {
	devices := []device.Device{{Name: "ghost", UDID: "X0"}}

	_, err := Resolve(testProject(), devices)
	require.Error(t, err)
	var invErr *InventoryError
	assert.True(t, errors.As(err, &invErr))
}

func TestResolveIsIdempotent(t *testing.T) {
	devices := inventory()
	p := testProject()

	first, err := Resolve(p, devices)
	require.NoError(t, err)
	second, err := Resolve(p, devices)
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}
