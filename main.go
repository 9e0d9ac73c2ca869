package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/tui-listproxy/internal/app"
	"github.com/pstuifzand/tui-listproxy/internal/config"
	"github.com/pstuifzand/tui-listproxy/internal/socket"
)

func main() {
	logFile, err := os.Create("listproxy.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	backend := flag.String("backend", "", "List backend: recycler or listview (overrides the config file)")
	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	addEntry := flag.String("add", "", "Add an entry to a running tui-listproxy instance")
	flag.Parse()

	// Handle add entry command
	if *addEntry != "" {
		if err := sendAddEntry(*addEntry); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Entry added")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		if *backend != config.BackendRecycler && *backend != config.BackendListView {
			fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", *backend)
			os.Exit(1)
		}
		cfg.Backend = *backend
	}

	var filePath string
	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.NewApp(filePath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.StartSocketServer(os.Getpid()); err != nil {
		// The list works without the socket
		log.Printf("Failed to start socket server: %v", err)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// sendAddEntry sends an add_entry command to a running instance
func sendAddEntry(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("entry text cannot be empty")
	}

	socketPath, pid, err := socket.FindRunningInstance()
	if err != nil {
		return fmt.Errorf("no running tui-listproxy instance found: %w", err)
	}

	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	response, err := client.SendAddEntry(text)
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	log.Printf("Successfully sent add_entry command: %s", text)
	return nil
}
