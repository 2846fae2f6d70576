//go:build !linux && !darwin && !windows

package main

// listenForKeyboard is unavailable on this platform
func listenForKeyboard(s *shortcuts, quit chan<- struct{}) {}
