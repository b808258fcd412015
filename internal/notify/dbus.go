//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest  = "org.freedesktop.Notifications"
	notificationsPath  = "/org/freedesktop/Notifications"
	notificationsIface = "org.freedesktop.Notifications"

	appName      = "Voice Notes"
	desktopEntry = "voicenotes"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one it returns a notifier that
// drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // no session bus is not an error
	}
	return &dbusNotifier{obj: conn.Object(notificationsDest, notificationsPath)}, nil
}

func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	call := d.obj.Call(notificationsIface+".Notify", 0,
		appName,
		n.Replaces,
		"",
		n.Summary,
		n.Body,
		[]string{},
		hints(n),
		expireTimeout(n.Timeout),
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}
	return id, nil
}

func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(notificationsIface+".CloseNotification", 0, id).Err
}

func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if n.Category != "" {
		h["category"] = dbus.MakeVariant(n.Category)
	}
	return h
}
