package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Jupyter notebooks to HTML")
	fmt.Fprintln(w, "  serve      Serve the rendering HTTP API")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nb2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Jupyter notebooks to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .ipynb file, directory, URL, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdout for - and URLs)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-notebook timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -s, --set <key=value>     Render setting, repeatable:")
	fmt.Fprintln(w, "                            code, markdown, tables, images, headline,")
	fmt.Fprintln(w, "                            tableOutline (true/false),")
	fmt.Fprintln(w, "                            codeHighlighter (none, prettyprint, highlightjs, chroma),")
	fmt.Fprintln(w, "                            markdownConverter (default, external)")
	fmt.Fprintln(w, "      --chroma-style <s>    Chroma style (default: github)")
	fmt.Fprintln(w, "      --raw-html            Pass raw HTML through the external converter")
	fmt.Fprintln(w, "      --embed-images        Inline relative images as data URIs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --standalone          Wrap output in a complete HTML document")
	fmt.Fprintln(w, "      --title <s>           Document title (default: file name)")
	fmt.Fprintln(w, "      --css <path>          Stylesheet file to inject")
	fmt.Fprintln(w, "      --style <name>        Named style (default, dark, minimal)")
	fmt.Fprintln(w, "      --style-dir <dir>     Directory of custom styles, searched first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Insertion:")
	fmt.Fprintln(w, "      --into <path>         Host HTML file receiving the notebook")
	fmt.Fprintln(w, "      --id <s>              ID of the receiving element")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2html serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the rendering HTTP API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  POST /api/render          Notebook JSON body, settings as query parameters")
	fmt.Fprintln(w, "                            (plus standalone=true, title=... and style=<name>)")
	fmt.Fprintln(w, "  GET  /health              Liveness probe")
	fmt.Fprintln(w, "  GET  /metrics             Prometheus metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --max-body <bytes>    Maximum request body size")
	fmt.Fprintln(w, "  -s, --set <key=value>     Base render setting, repeatable")
	fmt.Fprintln(w, "      --chroma-style <s>    Chroma style")
	fmt.Fprintln(w, "      --raw-html            Pass raw HTML through the external converter")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-render timeout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nb2html config [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration (file, then NB2HTML_* variables) as YAML.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nb2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nb2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
