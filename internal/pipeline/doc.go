// Package pipeline implements the notebook cell to HTML rendering stages.
//
// This package holds the text rendering core and the HTML passes around it:
//   - Block markdown conversion (BlockConverter): a small, deliberately
//     restricted dialect classified block by block
//   - Inline escaping: HTML escaping followed by a fixed sequence of
//     image, link, code, strong and emphasis substitutions
//   - External markdown conversion via goldmark (GoldmarkConverter)
//   - Cell rendering (CellRenderer): markdown cells, code cells and the
//     output MIME priority text/html > image/png > text/plain
//   - Post passes: first-heading and first-border removal, local image
//     embedding, CSS injection, standalone documents and insertion into a
//     host document
//
// Parsing notebooks lives in the notebook package; assembling a whole
// notebook and selecting settings is done by the root nb2html package.
package pipeline
