//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier talks to the session notification daemon.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the freedesktop notification service. When the
// session bus is unavailable it degrades to a no-op notifier rather
// than failing.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noopNotifier{}, nil //nolint:nilerr // headless session, notifications off
	}
	return &dbusNotifier{obj: conn.Object(notifyDest, notifyPath)}, nil
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant("chime"),
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions,
	// hints, expire_timeout) -> id
	call := d.obj.Call(
		notifyInterface+".Notify", 0,
		"Chime", n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, n.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *dbusNotifier) Dismiss(id uint32) error {
	return d.obj.Call(notifyInterface+".CloseNotification", 0, id).Err
}

// noopNotifier swallows notifications when no daemon is reachable.
type noopNotifier struct{}

func (noopNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }

func (noopNotifier) Dismiss(_ uint32) error { return nil }
