package sound

import "testing"

// Notifications before Initialize must be silent no-ops: CI machines and
// headless servers have no audio device.
func TestUninitializedNotifierIsNoOp(t *testing.T) {
	n := NewToneNotifier()

	n.NotifyTick()
	n.NotifySuccess()
	n.NotifyFailure()
	n.NotifyStart()
	n.Close()
}
