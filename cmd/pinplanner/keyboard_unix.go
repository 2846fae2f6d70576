//go:build linux || darwin

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// listenForKeyboard puts the terminal in raw-ish mode and dispatches single
// key presses until a quit key is pressed. It returns immediately when stdin
// is not a terminal.
func listenForKeyboard(s *shortcuts, quit chan<- struct{}) {
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}

	// Disable canonical mode and echo; keep output processing so \n still works
	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &newState); err != nil {
		return
	}
	defer unix.IoctlSetTermios(fd, ioctlSetTermios, oldState)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if s.handle(buf[0]) {
			close(quit)
			return
		}
	}
}
