//go:build !windows

// Package stderr captures output that native audio backends (ALSA, faad2)
// write straight to file descriptor 2 so it cannot tear the board layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and passes each non-empty captured line
// to onLine. onLine must not write to stderr. Call Start before the audio
// device is opened; on error the program can continue uncaptured.
func Start(onLine func(string)) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go drain(r, onLine, done)
	return nil
}

func drain(r *os.File, onLine func(string), done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if onLine != nil {
			onLine(line)
		}
	}
}

// WriteOriginal writes to the real stderr, bypassing capture.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for the reader to finish.
func Stop() {
	mu.Lock()
	if pipeRead == nil {
		mu.Unlock()
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1
	pipeWrite.Close()
	wait := done
	r := pipeRead
	pipeRead, pipeWrite = nil, nil
	mu.Unlock()

	<-wait
	r.Close()
}
