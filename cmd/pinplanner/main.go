package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abrezinsky/pinplanner/internal/app"
	"github.com/abrezinsky/pinplanner/internal/auth"
	"github.com/abrezinsky/pinplanner/internal/browser"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/web"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

// printBanner draws the logo box
func printBanner() {
	width := 62
	border := strings.Repeat("═", width)

	logo := []string{
		"     ____  _         ____  _                              ",
		"    |  _ \\(_)_ __   |  _ \\| | __ _ _ __  _ __   ___ _ __  ",
		"    | |_) | | '_ \\  | |_) | |/ _` | '_ \\| '_ \\ / _ \\ '__| ",
		"    |  __/| | | | | |  __/| | (_| | | | | | | |  __/ |    ",
		"    |_|   |_|_| |_| |_|   |_|\\__,_|_| |_|_| |_|\\___|_|    ",
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		line += strings.Repeat(" ", max(0, width-len(line)))
		fmt.Printf("  %s║%s%s%s║%s\n", cyan, yellow, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)
}

func main() {
	port := flag.Int("port", 8082, "HTTP server port")
	dbPath := flag.String("db", "pinplanner.db", "SQLite database path")
	catalogPath := flag.String("catalog", "", "Catalog YAML file (embedded catalog if not set)")
	lenient := flag.Bool("lenient", false, "Drop catalog board overrides that name unknown boards")
	password := flag.String("password", "", "Password protecting saved projects and settings (open if not set)")
	genPassword := flag.Bool("genpassword", false, "Generate a password and print it at startup")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `PinPlanner - pin assignment planner for hobby boards

Usage:
  pinplanner [options]

Options:
  -port int        HTTP server port (default 8082)
  -db string       SQLite database path (default "pinplanner.db")
  -catalog string  Catalog YAML file (embedded catalog if not set)
  -lenient         Drop catalog board overrides that name unknown boards
  -password str    Password protecting saved projects and settings
  -genpassword     Generate a password and print it at startup
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -nokeyboard      Disable keyboard shortcuts
  -version         Show version and exit
  -help            Show this help message

Keyboard Shortcuts (when enabled):
  o              Open planner in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  pinplanner                              # Run on port 8082 with pinplanner.db
  pinplanner -catalog ./my-parts.yaml     # Use a custom catalog
  pinplanner -password solder             # Protect the project store
  pinplanner -port 80 -db /data/pins.db   # Shared workshop server

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("pinplanner %s\n", version)
		os.Exit(0)
	}

	printBanner()

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	pw := *password
	if pw == "" && *genPassword {
		pw = auth.GeneratePassword()
		appLog.Info("Generated password", "password", pw)
	}

	a, err := app.New(appLog, app.Config{
		DBPath:         *dbPath,
		CatalogPath:    *catalogPath,
		LenientCatalog: *lenient,
		Password:       pw,
	}, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	if pw != "" {
		appLog.Info("Saved projects and settings are password protected")
	}

	addr := fmt.Sprintf(":%d", *port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	quit := make(chan struct{})
	if !*noKeyboard {
		printKeyboardHelp(os.Stdout)
		go listenForKeyboard(&shortcuts{
			plannerURL: fmt.Sprintf("http://localhost:%d/", *port),
			log:        appLog,
			open:       browser.Open,
			out:        os.Stdout,
		}, quit)
	} else {
		fmt.Printf("%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			a.Close()
			log.Fatal(err)
		}
	case <-signals:
		appLog.Info("Signal received, shutting down")
	case <-quit:
	}
}
