package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// BlockKind classifies a markdown block by its leading character.
type BlockKind int

// Block kinds recognized by BlockConverter.
const (
	BlockParagraph BlockKind = iota
	BlockUnorderedList
	BlockOrderedList
	BlockCode
	BlockQuote
	BlockHeading
	BlockRawHTML
)

var blockKindNames = map[BlockKind]string{
	BlockParagraph:     "paragraph",
	BlockUnorderedList: "unordered-list",
	BlockOrderedList:   "ordered-list",
	BlockCode:          "indented-code",
	BlockQuote:         "blockquote",
	BlockHeading:       "heading",
	BlockRawHTML:       "raw-html",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "BlockKind(" + strconv.Itoa(int(k)) + ")"
}

// ClassifyBlock returns the kind of a normalized block.
// Anything without a recognized leading character is a paragraph.
func ClassifyBlock(block string) BlockKind {
	if block == "" {
		return BlockParagraph
	}
	switch c := block[0]; {
	case c == '*':
		return BlockUnorderedList
	case c >= '1' && c <= '9':
		return BlockOrderedList
	case c == ' ':
		return BlockCode
	case c == '>':
		return BlockQuote
	case c == '#':
		return BlockHeading
	case c == '<':
		return BlockRawHTML
	default:
		return BlockParagraph
	}
}

// containerRule describes a block that is split into segments and wrapped.
type containerRule struct {
	split  *regexp.Regexp
	open   string
	close  string
	join   string
	escape func(string) string
}

var containerRules = map[BlockKind]containerRule{
	BlockUnorderedList: {
		split:  regexp.MustCompile(`\n\* `),
		open:   "<ul><li>",
		close:  "</li></ul>",
		join:   "</li>\n<li>",
		escape: InlineEscape,
	},
	BlockOrderedList: {
		split:  regexp.MustCompile(`\n[1-9]\d*\.? `),
		open:   "<ol><li>",
		close:  "</li></ol>",
		join:   "</li>\n<li>",
		escape: InlineEscape,
	},
	BlockCode: {
		split:  regexp.MustCompile(`\n    `),
		open:   "<pre><code>",
		close:  "</code></pre>",
		join:   "\n",
		escape: EscapeHTML,
	},
	BlockQuote: {
		split:  regexp.MustCompile(`\n> `),
		open:   "<blockquote>",
		close:  "</blockquote>",
		join:   "\n",
		escape: InlineEscape,
	},
}

// BlockConverter converts a restricted markdown dialect to HTML.
// Blocks are separated by blank lines and classified by their first
// character; there is no nesting and no lazy continuation.
// The zero value is ready to use and safe for concurrent use.
type BlockConverter struct{}

// NewBlockConverter creates a BlockConverter.
func NewBlockConverter() *BlockConverter {
	return &BlockConverter{}
}

// Convert returns the HTML for a markdown source. Empty input yields "".
func (c *BlockConverter) Convert(content string) string {
	var sb strings.Builder
	for _, block := range splitBlocks(normalizeSource(content)) {
		sb.WriteString(convertBlock(block))
	}
	return sb.String()
}

// ToHTML implements MarkdownConverter. It never fails.
func (c *BlockConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.Convert(content), nil
}

// convertBlock renders one block according to its kind.
func convertBlock(block string) string {
	kind := ClassifyBlock(block)

	if rule, ok := containerRules[kind]; ok {
		// The leading newline makes the first item match the split pattern;
		// whatever precedes the first match is framing and is dropped.
		segments := rule.split.Split("\n"+block, -1)[1:]
		for i, seg := range segments {
			segments[i] = rule.escape(seg)
		}
		return rule.open + strings.Join(segments, rule.join) + rule.close
	}

	switch kind {
	case BlockHeading:
		return convertHeading(block)
	case BlockRawHTML:
		return block
	default:
		return "<p>" + InlineEscape(block) + "</p>"
	}
}

// convertHeading derives the heading level from the position of the first
// space, so "## Title" is level 2 and "#Title text" is level 6.
// Without any space the level is -1 and the whole block is the text.
func convertHeading(block string) string {
	level := strings.IndexByte(block, ' ')
	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ">" + InlineEscape(block[level+1:]) + "</" + tag + ">"
}
