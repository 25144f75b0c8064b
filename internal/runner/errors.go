package runner

import "fmt"

// InvalidTargetError reports a target that declares no platforms. It is
// surfaced so callers can report a malformed project definition instead of
// silently skipping the target.
type InvalidTargetError struct {
	Target string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("target %s declares no platforms", e.Target)
}

// InventoryError reports a device record with a missing runtime identifier.
type InventoryError struct {
	Name string
	UDID string
}

func (e *InventoryError) Error() string {
	return fmt.Sprintf("device %s (%s) has no runtime identifier", e.Name, e.UDID)
}
