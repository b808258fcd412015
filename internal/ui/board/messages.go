package board

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/voicenotes/internal/playback"
)

// ViewMsg carries a fresh snapshot of one clip.
type ViewMsg playback.View

// StateMsg reports a clip state transition.
type StateMsg playback.StateChange

// EffectMsg reports a clip effect change.
type EffectMsg playback.EffectChange

// ErrorMsg reports a clip that became unavailable.
type ErrorMsg playback.ErrorEvent

// ClosedMsg is sent once the board has been closed.
type ClosedMsg struct{}

// NoticeMsg is a line of text for the status bar, such as captured
// stderr output from the audio backend.
type NoticeMsg struct {
	Text string
}

// WatchBoard returns a command that waits for the next board event.
func WatchBoard(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case v := <-sub.Views:
			return ViewMsg(v)
		case e := <-sub.StateChanged:
			return StateMsg(e)
		case e := <-sub.EffectChanged:
			return EffectMsg(e)
		case e := <-sub.Error:
			return ErrorMsg(e)
		case <-sub.Done:
			return ClosedMsg{}
		}
	}
}

// WatchNotices returns a command that waits for the next line on ch.
func WatchNotices(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Text: line}
	}
}
