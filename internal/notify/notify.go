// Package notify raises desktop notifications for track changes.
package notify

// Urgency levels per the freedesktop notification spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification. A non-zero ReplacesID
// updates an existing notification in place instead of stacking a new
// one.
type Notification struct {
	Title      string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier delivers notifications to the desktop. Implementations stay
// silent on failure; a missing notification is never worth interrupting
// playback for.
type Notifier interface {
	// Notify shows a notification and returns its server-assigned ID,
	// or 0 when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	// Dismiss withdraws a notification by ID.
	Dismiss(id uint32) error
}
