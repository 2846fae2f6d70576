package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/abrezinsky/pinplanner/internal/logger"
)

// shortcuts binds single keys to server actions
type shortcuts struct {
	plannerURL string
	log        *logger.SlogLogger
	open       func(url string) error
	out        io.Writer
}

// handle performs the action bound to key and reports whether the server
// should stop.
func (s *shortcuts) handle(key byte) bool {
	switch strings.ToLower(string(key)) {
	case "o":
		fmt.Fprintf(s.out, "%sOpening planner in browser...%s\n", cyan, reset)
		if err := s.open(s.plannerURL); err != nil {
			fmt.Fprintf(s.out, "%sError opening browser: %v%s\n", red, err, reset)
		}
	case "h":
		if s.log.IsHTTPLoggingEnabled() {
			s.log.DisableHTTPLogging()
			fmt.Fprintf(s.out, "%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			s.log.EnableHTTPLogging()
			fmt.Fprintf(s.out, "%sHTTP logging enabled%s\n", green, reset)
		}
	case "l":
		cycleLogLevel(s.log, s.out)
	case "?":
		printKeyboardHelp(s.out)
	case "q", "\x03": // Ctrl+C arrives as a byte in raw mode
		fmt.Fprintf(s.out, "%sShutting down server...%s\n", yellow, reset)
		return true
	}
	return false
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger, out io.Writer) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Fprintf(out, "%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp(out io.Writer) {
	fmt.Fprintf(out, "\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Fprintf(out, "    %so%s      - Open planner in browser\n", cyan, reset)
	fmt.Fprintf(out, "    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Fprintf(out, "    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Fprintf(out, "    %sq%s      - Quit server\n", cyan, reset)
	fmt.Fprintf(out, "    %s?%s      - Show this help\n\n", cyan, reset)
}
