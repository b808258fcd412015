package notify

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestUrgencyValues(t *testing.T) {
	// wire values of the notification protocol
	if UrgencyLow != 0 || UrgencyNormal != 1 || UrgencyCritical != 2 {
		t.Errorf("urgencies = %d %d %d, want 0 1 2", UrgencyLow, UrgencyNormal, UrgencyCritical)
	}
}

func TestClipUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("clip unavailable: Morning Idea: %w", cause)

	n := ClipUnavailable("Morning Idea", err)

	if n.Summary != "Voice note unavailable" {
		t.Errorf("Summary = %q", n.Summary)
	}
	if n.Body != "Morning Idea\nconnection refused" {
		t.Errorf("Body = %q", n.Body)
	}
	if n.Category != "transfer.error" || n.Urgency != UrgencyNormal {
		t.Errorf("Category/Urgency = %q/%d", n.Category, n.Urgency)
	}
}

func TestClipUnavailable_NilError(t *testing.T) {
	n := ClipUnavailable("Morning Idea", nil)

	if n.Body != "Morning Idea" {
		t.Errorf("Body = %q, want title only", n.Body)
	}
}

func TestExpireTimeout(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int32
	}{
		{0, -1},
		{-time.Second, -1},
		{1500 * time.Millisecond, 1500},
		{1000 * time.Hour, 1<<31 - 1},
	}
	for _, tt := range tests {
		if got := expireTimeout(tt.in); got != tt.want {
			t.Errorf("expireTimeout(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = nopNotifier{}

	id, err := n.Notify(Notification{Summary: "x"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v", id, err)
	}
	if err := n.Close(1); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestRootCause(t *testing.T) {
	base := errors.New("decoder failed")
	sentinel := errors.New("clip unavailable")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"plain", base, base},
		{"wrapped", fmt.Errorf("play: %w", base), base},
		{"multi", fmt.Errorf("%w: Clip: %w", sentinel, base), base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rootCause(tt.err); got != tt.want { //nolint:errorlint // identity check
				t.Errorf("rootCause() = %v, want %v", got, tt.want)
			}
		})
	}
}
