package main

import (
	"errors"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// errUsagePrinted marks errors whose usage text was already shown.
var errUsagePrinted = errors.New("usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags that shape the rendering engine.
type renderFlags struct {
	set         map[string]string // --set key=value render settings
	chromaStyle string
	rawHTML     bool
	timeout     string
}

// documentFlags holds standalone document flags.
type documentFlags struct {
	standalone bool
	title      string
	css        string
	style      string
	styleDir   string
}

// insertFlags holds host document insertion flags.
type insertFlags struct {
	into string // host HTML file
	id   string // target element ID
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	render      renderFlags
	document    documentFlags
	insert      insertFlags
	output      string
	workers     int
	embedImages bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common       commonFlags
	render       renderFlags
	addr         string
	maxBodyBytes int64
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringToStringVarP(&f.set, "set", "s", nil, "render setting key=value (repeatable)")
	fs.StringVar(&f.chromaStyle, "chroma-style", "", "chroma style for codeHighlighter=chroma")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "let the goldmark converter pass raw HTML through")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-notebook timeout (e.g., 30s, 2m)")
}

// addDocumentFlags adds standalone document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "wrap output in a complete HTML document")
	fs.StringVar(&f.title, "title", "", "document title (default: file name)")
	fs.StringVar(&f.css, "css", "", "stylesheet file to inject")
	fs.StringVar(&f.style, "style", "", "named style to inject (default, dark, minimal or custom)")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory of custom {name}.css styles")
}

// addInsertFlags adds host insertion flags to a FlagSet.
func addInsertFlags(fs *flag.FlagSet, f *insertFlags) {
	fs.StringVar(&f.into, "into", "", "host HTML file to insert the notebook into")
	fs.StringVar(&f.id, "id", "", "ID of the host element receiving the notebook")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.embedImages, "embed-images", false, "inline relative images as data URIs")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocumentFlags(fs, &f.document)
	addInsertFlags(fs, &f.insert)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	f := &serveFlags{}
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.Usage = func() {}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default from config)")
	fs.Int64Var(&f.maxBodyBytes, "max-body", 0, "maximum request body in bytes (0 = config)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*commonFlags, error) {
	f := &commonFlags{}
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.Usage = func() {}
	addCommonFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
