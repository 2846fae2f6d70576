//go:build windows

package main

import "os"

// listenForKeyboard reads stdin without terminal changes; keys take effect
// after Enter.
func listenForKeyboard(s *shortcuts, quit chan<- struct{}) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 || buf[0] == '\r' || buf[0] == '\n' {
			continue
		}
		if s.handle(buf[0]) {
			close(quit)
			return
		}
	}
}
