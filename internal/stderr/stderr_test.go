//go:build !windows

package stderr

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

func TestStart_CapturesLines(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	if err := Start(func(l string) {
		mu.Lock()
		lines = append(lines, l)
		mu.Unlock()
	}); err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 1 || lines[0] != "ALSA lib pcm.c: underrun occurred" {
		t.Errorf("captured = %q, want the single non-blank line", lines)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	done := make(chan struct{})
	go func() {
		Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}
