package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pthm/hxlive/lib/generator"
)

const version = "0.1.0"

type command struct {
	name    string
	summary string
	run     func(opts generator.Options, patterns []string) error
}

var commands = []command{
	{"generate", "write <file>_live.go next to every //hxlive:schema struct", func(opts generator.Options, patterns []string) error {
		return generator.New(opts).Generate(patterns...)
	}},
	{"clean", "delete generated *_live.go files", func(opts generator.Options, patterns []string) error {
		return generator.New(opts).Clean(patterns...)
	}},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch name := args[0]; name {
	case "version":
		fmt.Fprintf(stdout, "hxlive %s\n", version)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		for _, cmd := range commands {
			if cmd.name != name {
				continue
			}
			opts, patterns := parseArgs(args[1:])
			if err := cmd.run(opts, patterns); err != nil {
				fmt.Fprintf(stderr, "hxlive %s: %v\n", name, err)
				return 1
			}
			return 0
		}
		fmt.Fprintf(stderr, "hxlive: no command %q\n\n", name)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: hxlive <command> [--dry-run] [patterns...]")
	fmt.Fprintln(w)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "  %-9s %s\n", "version", "print the hxlive version")
	fmt.Fprintf(w, "  %-9s %s\n", "help", "print this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Patterns default to ./... and --dry-run reports changes without writing.")
}

// parseArgs splits flags from package patterns.
func parseArgs(args []string) (generator.Options, []string) {
	var opts generator.Options
	var patterns []string

	for _, arg := range args {
		if arg == "--dry-run" {
			opts.DryRun = true
		} else {
			patterns = append(patterns, arg)
		}
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return opts, patterns
}
