package session

// Notifier receives fire-and-forget haptic/audio cues. Implementations must
// not block: notifications are dispatched from the session's timing paths.
type Notifier interface {
	NotifyTick()
	NotifySuccess()
	NotifyFailure()
	NotifyStart()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) NotifyTick()    {}
func (NopNotifier) NotifySuccess() {}
func (NopNotifier) NotifyFailure() {}
func (NopNotifier) NotifyStart()   {}

// MultiNotifier fans notifications out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyTick() {
	for _, n := range m {
		n.NotifyTick()
	}
}

func (m MultiNotifier) NotifySuccess() {
	for _, n := range m {
		n.NotifySuccess()
	}
}

func (m MultiNotifier) NotifyFailure() {
	for _, n := range m {
		n.NotifyFailure()
	}
}

func (m MultiNotifier) NotifyStart() {
	for _, n := range m {
		n.NotifyStart()
	}
}
