// Package notify posts desktop notifications when voice notes fail.
package notify

import "time"

// Urgency levels of the freedesktop notification protocol.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is one desktop notification.
type Notification struct {
	Summary  string
	Body     string
	Category string        // freedesktop category hint, e.g. "transfer.error"
	Timeout  time.Duration // 0 uses the server default
	Replaces uint32        // id of a notification to update in place
	Urgency  Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification.
	Close(id uint32) error
}

// ClipUnavailable describes a voice note that could not be loaded or played.
func ClipUnavailable(title string, err error) Notification {
	body := title
	if cause := rootCause(err); cause != nil {
		body += "\n" + cause.Error()
	}
	return Notification{
		Summary:  "Voice note unavailable",
		Body:     body,
		Category: "transfer.error",
		Timeout:  5 * time.Second,
		Urgency:  UrgencyNormal,
	}
}

// rootCause follows the wrap chain to the innermost error, taking the last
// branch of joined errors.
func rootCause(err error) error {
	for err != nil {
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			next := u.Unwrap()
			if next == nil {
				return err
			}
			err = next
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return err
			}
			err = errs[len(errs)-1]
		default:
			return err
		}
	}
	return nil
}

// expireTimeout converts a timeout to the protocol's milliseconds, where -1
// selects the server default.
func expireTimeout(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(min(d.Milliseconds(), 1<<31-1))
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
