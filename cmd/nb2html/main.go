package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-nb2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized command name.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command and maps its error to an exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := run(ctx, args, env)
	if err != nil && !errors.Is(err, errUsagePrinted) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// run executes the command named by args[1].
// A notebook path or "-" in first position is shorthand for convert.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: missing command", errUsagePrinted)
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeNotebook(cmd) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		return runConvert(ctx, rest, env)
	case "serve":
		return runServe(ctx, rest, env)
	case "config":
		return runConfigCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "nb2html %s\n", Version)
		return nil
	case "help", "-h", "--help":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func isCommand(name string) bool {
	switch name {
	case "convert", "serve", "config", "version", "help":
		return true
	}
	return false
}

// looksLikeNotebook reports whether arg names notebook input rather than a command.
func looksLikeNotebook(arg string) bool {
	if arg == stdinArg || fileutil.IsURL(arg) {
		return true
	}
	return fileutil.IsNotebook(arg)
}
