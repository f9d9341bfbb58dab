// Package cli implements the command-line front end for the scan engine.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/messersm/pyscan/api"
	"github.com/messersm/pyscan/ports"
	"github.com/messersm/pyscan/scanner"
)

// Run is the main entry point for the CLI. It parses flags and arguments,
// validates them, and orchestrates the scan.
func Run() {
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	openOnly := flag.Bool("open", false, "Only show open ports")
	workers := flag.Int("t", 100, "Number of concurrent workers")
	timeout := flag.Float64("timeout", 1.0, "Connect timeout in seconds")
	serve := flag.Bool("serve", false, "Start the REST API server instead of scanning")
	flag.Parse()

	if *serve {
		if err := api.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		return
	}

	portSpec := args[len(args)-1]
	hosts := args[:len(args)-1]

	portList, err := ports.Parse(portSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctl, err := scanner.NewController(scanner.Config{
		Hosts:   hosts,
		Ports:   portList,
		Timeout: time.Duration(*timeout * float64(time.Second)),
		Workers: *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// An interrupt stops the scan early; partial results are still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bar *progressbar.ProgressBar
	quit := make(chan struct{})
	if !*jsonOutput {
		bar = newProgressBar(ctl.Total())
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-quit:
					return
				case <-ticker.C:
					_ = bar.Set(ctl.Completed())
				}
			}
		}()
	}

	results, runErr := ctl.Run(ctx)

	close(quit)
	if bar != nil {
		_ = bar.Clear()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if errors.Is(runErr, context.Canceled) {
		color.Yellow("scan interrupted, showing partial results")
	}

	if *jsonOutput {
		outputJSON(results)
	} else {
		outputPlainText(results, *openOnly)
	}
}

// printUsage displays the help message.
func printUsage() {
	fmt.Println("Usage: pyscan [-json] [-open] [-t workers] [-timeout seconds] host1 host2... ports")
	fmt.Println("       pyscan -serve")
	fmt.Println("Example: pyscan 127.0.0.1 scanme.nmap.org 22,80,8000-8100")
	fmt.Println("Example: pyscan -json -timeout 0.25 192.0.2.10 1-1024")
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("scanning"),
	)
}

// outputJSON marshals and prints results in JSON format.
func outputJSON(results []scanner.ScanResult) {
	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding to JSON: %v\n", err)
		return
	}
	fmt.Println(string(jsonData))
}

// outputPlainText prints one line per result, colorized by port state.
func outputPlainText(results []scanner.ScanResult, openOnly bool) {
	stateColors := map[scanner.PortState]*color.Color{
		scanner.StateOpen:     color.New(color.FgGreen),
		scanner.StateClosed:   color.New(color.FgRed),
		scanner.StateFiltered: color.New(color.FgYellow),
	}
	openCount := 0
	for _, res := range results {
		if res.State == scanner.StateOpen {
			openCount++
		}
		if openOnly && res.State != scanner.StateOpen {
			continue
		}
		state := string(res.State)
		if c, ok := stateColors[res.State]; ok {
			state = c.Sprint(state)
		}
		if res.Service != "" {
			fmt.Printf("%s:%d/%s - %s - %s\n", res.Host, res.Port, res.Protocol, state, res.Service)
		} else {
			fmt.Printf("%s:%d/%s - %s\n", res.Host, res.Port, res.Protocol, state)
		}
	}
	fmt.Printf("%d ports scanned, %d open\n", len(results), openCount)
}
