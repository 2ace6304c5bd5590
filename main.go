package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ubfsw/digitpad/config"
	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
	"github.com/ubfsw/digitpad/shell"
	"github.com/ubfsw/digitpad/tui"
)

func parseOfflineCommands(cmd []string) bool {
	if len(cmd) != 1 {
		return false
	}
	switch cmd[0] {
	case "version":
		fmt.Println("digitpad", version)
		return true
	}
	return false
}

const version = "0.1.0"

func main() {
	configFile := flag.String("config", "", "config file (default: user config dir)")
	serverAddr := flag.String("server", "", "serve the HTTP API on this address, e.g. :8080")
	useTUI := flag.Bool("tui", false, "draw with the mouse in the terminal")
	jsonOutput := flag.Bool("json", false, "shell output as json")
	flag.Parse()

	otherFlags := flag.Args()
	if parseOfflineCommands(otherFlags) {
		return
	}

	if err := run(*configFile, *serverAddr, *useTUI, *jsonOutput, otherFlags); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

func run(configFile, serverAddr string, useTUI, jsonOutput bool, args []string) error {
	log.InitLog()

	if configFile == "" {
		var err error
		if configFile, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := log.InitSentry(cfg.SentryDSN); err != nil {
		log.Warning.Printf("sentry disabled: %v", err)
	}

	store, err := session.Open(cfg.SessionFile)
	if err != nil {
		return err
	}

	p := pad.New(pad.Options{Config: cfg, Session: store})
	defer p.Close()
	log.Trace.Printf("classifier at %s", cfg.APIURL)

	switch {
	case serverAddr != "":
		return runServerMode(serverAddr, p, store)
	case useTUI:
		return tui.Run(p, store)
	default:
		ctx := &shell.ShellCtxt{
			Pad:        p,
			Session:    store,
			JSONOutput: jsonOutput,
		}
		return shell.RunShell(ctx, args)
	}
}
