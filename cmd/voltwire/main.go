package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/voltwire/voltwire/lib/devserver"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		if err := runServe(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("voltwire version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	addr := ":8080"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--addr":
			if i+1 >= len(args) {
				return fmt.Errorf("--addr requires a value")
			}
			i++
			addr = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("voltwire demo server listening", "addr", addr)
	return http.ListenAndServe(addr, devserver.New(logger))
}

func printUsage() {
	fmt.Println(`voltwire - VoltWire client runtime demo tooling

Usage:
  voltwire <command> [arguments]

Commands:
  serve [--addr :8080]   Run the reference demo server
  version                Print version
  help                   Show this help`)
}
