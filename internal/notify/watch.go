package notify

import (
	"log/slog"

	"github.com/llehouerou/voicenotes/internal/playback"
)

// Watch posts a notification for every clip that becomes unavailable until
// the subscription ends. Consecutive errors replace each other instead of
// stacking. title maps a clip index to its display title.
func Watch(sub *playback.Subscription, n Notifier, title func(clip int) string) {
	var last uint32
	for {
		select {
		case e := <-sub.Error:
			note := ClipUnavailable(title(e.Clip), e.Err)
			note.Replaces = last
			id, err := n.Notify(note)
			if err != nil {
				slog.Debug("notification failed", "error", err)
				continue
			}
			if id != 0 {
				last = id
			}
		case <-sub.Done:
			return
		}
	}
}
