//go:build !linux

package notify

// noopNotifier stands in on platforms without a notification backend.
type noopNotifier struct{}

// New returns a no-op notifier.
func New() (Notifier, error) {
	return noopNotifier{}, nil
}

func (noopNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (noopNotifier) Dismiss(_ uint32) error { return nil }
