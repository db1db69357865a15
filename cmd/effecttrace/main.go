// Package main provides effecttrace, a tool for exploring element-effect
// lifecycles without writing a test.
//
// It reads a YAML script describing a sequence of frames, replays the
// frames through a real composition with a DisposableRefEffect and a
// DomSideEffect attached to every mounted scope, and prints the resulting
// lifecycle events:
//
//	frames:
//	  - button: "a"
//	  - button: "b"
//	  - {}
//
// A scope missing from a frame is unmounted on that frame; a null key
// registers the effects unkeyed.
package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

func main() {
	scriptPath := flag.String("script", "", "path to the YAML replay script")
	jsonOut := flag.Bool("json", false, "emit events as JSON lines")
	verbose := flag.Bool("v", false, "enable debug logging of commits")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: effecttrace -script <file.yaml> [-json] [-v]")
		os.Exit(2)
	}

	if err := run(*scriptPath, *jsonOut, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "effecttrace: %v\n", err)
		os.Exit(1)
	}
}

func run(scriptPath string, jsonOut, verbose bool) error {
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer logger.Sync()
	}

	events, err := runScript(script, logger)
	if err != nil {
		return err
	}

	for _, event := range events {
		if jsonOut {
			line, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
			fmt.Println(string(line))
			continue
		}
		if event.Key == nil {
			fmt.Printf("frame=%d scope=%s event=%s\n", event.Frame, event.Scope, event.Event)
		} else {
			fmt.Printf("frame=%d scope=%s event=%s key=%v\n", event.Frame, event.Scope, event.Event, event.Key)
		}
	}
	return nil
}
