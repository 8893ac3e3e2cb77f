package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/nishit12/Importlargefile/internal/client"
	"github.com/nishit12/Importlargefile/internal/ingest"
)

const (
	// Default service address when INGEST_URL is unset
	defaultBaseURL = "http://localhost:8080"
	// Default bound for one command, long enough for a transcode
	defaultTimeout = 30 * time.Minute
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, term.IsTerminal(int(os.Stdout.Fd()))))
}

// run executes one command and returns the process exit code. stdoutIsTTY
// guards against dumping binary results into a terminal.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, stdoutIsTTY bool) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	baseURL := os.Getenv("INGEST_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c, err := client.New(baseURL, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	switch args[0] {
	case "process":
		return runProcess(ctx, c, args[1:], stdout, stderr, stdoutIsTTY)
	case "fetch":
		return runFetch(ctx, c, args[1:], stdout, stderr, stdoutIsTTY)
	case "reclaim":
		return runReclaim(ctx, c, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", sanitizeCommand(args[0]))
		printUsage(stderr)
		return 2
	}
}

// sanitizeCommand keeps only [a-zA-Z0-9_-] so that arbitrary input is never
// echoed to the terminal.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
		if b.Len() >= 32 {
			break
		}
	}
	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ingestctl <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  process -type <type> -name <prefix> [-o file] <path>   Ingest a file and write the result")
	fmt.Fprintln(w, "  fetch [-o file] <fileName>                             Download a cached result")
	fmt.Fprintln(w, "  reclaim                                                Run a cleanup pass on the server")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  INGEST_URL   Service address (default: %s)\n", defaultBaseURL)
}

func runProcess(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer, stdoutIsTTY bool) int {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	fs.SetOutput(stderr)
	declaredType := fs.String("type", "", "declared file type (e.g. png, mp4)")
	name := fs.String("name", "", "result file name prefix")
	out := fs.String("o", "", "write result bytes to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: process takes exactly one path")
		return 2
	}

	req := ingest.FileRequest{RawPath: fs.Arg(0), DeclaredType: *declaredType, NamePrefix: *name}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", ingest.RejectMessage(err))
		return 2
	}

	res, err := c.Process(ctx, req)
	if err != nil {
		return reportError(stderr, err)
	}

	if err := writeResult(res.Bytes, *out, stdout, stdoutIsTTY); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "%s: %d bytes (%s)\n", res.FileName, res.Size, res.Type)
	return 0
}

func runFetch(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer, stdoutIsTTY bool) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "write result bytes to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: fetch takes exactly one file name")
		return 2
	}

	data, err := c.FetchResult(ctx, fs.Arg(0))
	if err != nil {
		return reportError(stderr, err)
	}
	if err := writeResult(data, *out, stdout, stdoutIsTTY); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runReclaim(ctx context.Context, c *client.Client, stdout, stderr io.Writer) int {
	report, err := c.Reclaim(ctx)
	if err != nil {
		return reportError(stderr, err)
	}

	fmt.Fprintf(stdout, "Reclaim (%s) finished in %s\n", report.Reason, report.Duration)
	for _, a := range report.Actions {
		status := "ok"
		if a.Error != "" {
			status = "FAILED: " + a.Error
		}
		fmt.Fprintf(stdout, "  %-16s %-10s %s\n", a.Name, a.Duration, status)
	}
	if report.Failed > 0 {
		return 1
	}
	return 0
}

var errTerminalOutput = errors.New("refusing to write binary data to a terminal; use -o <file>")

func writeResult(data []byte, out string, stdout io.Writer, stdoutIsTTY bool) error {
	if out == "" {
		if stdoutIsTTY {
			return errTerminalOutput
		}
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

func reportError(stderr io.Writer, err error) int {
	var rejected *client.RejectedError
	if errors.As(err, &rejected) {
		fmt.Fprintf(stderr, "Error (HTTP %d): %s\n", rejected.StatusCode, rejected.Message)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
