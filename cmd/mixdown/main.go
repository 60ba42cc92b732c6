package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mixdown/mixin"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "play":
		return playCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only validate the plan without composing")
	quota := fs.Int("quota", 0, "cap on providers applied per pass (0 uses the default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mixdown run: plan path required")
	}
	planPath := remaining[0]
	plan, err := mixin.LoadPlan(planPath)
	if err != nil {
		return err
	}
	if *checkOnly {
		return nil
	}

	target, err := seedTarget(remaining[1:])
	if err != nil {
		return err
	}
	composer := mixin.NewComposer(mixin.Config{ProviderQuota: *quota})
	if err := composer.Compose(context.Background(), target, plan.Source(), mixin.Args{}); err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}

	for _, key := range target.Keys() {
		val, _ := target.Get(key)
		fmt.Printf("%s = %s\n", key, val.String())
	}
	return nil
}

// seedTarget builds the receiving target from trailing key=value arguments,
// giving plan mixins pre-existing bindings to collide with.
func seedTarget(raw []string) (*mixin.Target, error) {
	target := mixin.NewTarget()
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("mixdown run: expected key=value, got %q", item)
		}
		target.Set(name, parseLiteral(strings.TrimSpace(value)))
	}
	return target, nil
}

// parseLiteral reads a property value: any JSON literal, falling back to a
// plain string for bare words.
func parseLiteral(raw string) mixin.Value {
	if val, err := mixin.ParseValue([]byte(raw)); err == nil {
		return val
	}
	return mixin.NewString(raw)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <run|play> [flags] ...\n", prog)
	fmt.Fprintf(os.Stderr, "  %s run [flags] <plan.toml> [key=value...]\n", prog)
	fmt.Fprintln(os.Stderr, "    -check")
	fmt.Fprintln(os.Stderr, "      only validate the plan without composing")
	fmt.Fprintln(os.Stderr, "    -quota <n>")
	fmt.Fprintln(os.Stderr, "      cap on providers applied per pass")
	fmt.Fprintf(os.Stderr, "  %s play [-plan <plan.toml>]\n", prog)
	fmt.Fprintln(os.Stderr, "    interactive composition playground")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
