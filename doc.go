// Package nb2html renders Jupyter notebooks (.ipynb) to HTML.
//
// # Quick Start
//
//	conv, err := nb2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Render(ctx, nb2html.Input{Source: data})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The output is a fragment: cell fragments concatenated in notebook order.
// Set Input.Standalone for a complete HTML document.
//
// # Rendering Rules
//
// Markdown cells go through a small built-in markdown dialect (paragraphs,
// ATX headings, "*" and numbered lists, four-space code, "> " quotes, raw
// HTML blocks) or, with MarkdownExternal, through goldmark.
//
// Code cells emit their source inside figure.highlight, then each output.
// A data output renders the first of text/html, image/png and text/plain it
// carries; when that type is disabled by settings the output renders nothing.
// Stream outputs render as preformatted text.
//
// A cell that fails to render is dropped and logged. Malformed notebook JSON
// fails the whole render.
//
// # Settings
//
// Settings can be built from a loosely typed map, as read from config files
// or request parameters:
//
//	settings := nb2html.MergeSettings(map[string]any{
//	    "headline":        false,
//	    "codeHighlighter": "chroma",
//	})
//	conv, err := nb2html.NewConverter(nb2html.WithSettings(settings))
//
// Unknown keys and values of the wrong type are ignored.
//
// # Sources
//
// RenderFrom and Insert take a Fetcher: HTTPFetcher, FileFetcher,
// ReaderFetcher or BytesFetcher.
package nb2html
