package render

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-docmark/blocks"
)

// markdownEscaper neutralises markdown-significant characters in literal run
// content. Content inside code spans bypasses it entirely.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`#`, `\#`,
	`~`, `\~`,
	`<`, `\<`,
	`>`, `\>`,
)

// renderRuns converts an ordered run sequence into one markdown inline
// string. Runs are concatenated without added whitespace; empty runs emit
// nothing. Malformed runs are skipped and recorded as warnings.
func renderRuns(runs []blocks.InlineRun, opts Options, warnings *warningList, blockID string) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(renderRun(run, opts, warnings, blockID))
	}
	return b.String()
}

func renderRun(run blocks.InlineRun, opts Options, warnings *warningList, blockID string) string {
	switch {
	case run.TextRun != nil:
		return renderTextRun(*run.TextRun, opts, warnings, blockID)
	case run.MentionUser != nil:
		if run.MentionUser.UserID == "" {
			return ""
		}
		return "@" + run.MentionUser.UserID
	case run.MentionDoc != nil:
		return renderMentionDoc(*run.MentionDoc)
	case run.Equation != nil:
		if run.Equation.Content == "" {
			return ""
		}
		return "$" + run.Equation.Content + "$"
	}
	warnings.add(WarningEmptyRun, blockID, "inline run carries no recognised element")
	return ""
}

// renderTextRun applies the fixed style composition order, outermost to
// innermost: link, strikethrough, bold, italic, inline code. Underline has no
// markdown equivalent and renders as a raw <u> tag directly around the
// content, or is dropped, per configuration.
func renderTextRun(run blocks.TextRun, opts Options, warnings *warningList, blockID string) string {
	if run.Content == "" {
		return ""
	}

	style := run.Style

	var out string
	if style.InlineCode {
		out = codeSpan(run.Content)
	} else {
		out = markdownEscaper.Replace(run.Content)
	}

	if style.Underline && opts.UnderlineRendering == UnderlineHTMLTag {
		out = "<u>" + out + "</u>"
	}
	if style.Italic {
		out = "*" + out + "*"
	}
	if style.Bold {
		out = "**" + out + "**"
	}
	if style.Strikethrough {
		out = "~~" + out + "~~"
	}
	if style.Link != nil && style.Link.URL != "" {
		target, err := decodeLinkTarget(style.Link.URL)
		if err != nil {
			warnings.add(WarningInlineDecode, blockID, "link target %q: %v", style.Link.URL, err)
			return ""
		}
		out = "[" + out + "](" + target + ")"
	}

	return out
}

func renderMentionDoc(mention blocks.MentionDoc) string {
	title := markdownEscaper.Replace(mention.Title)
	switch {
	case mention.URL != "" && title != "":
		return "[" + title + "](" + escapeLinkDestination(mention.URL) + ")"
	case title != "":
		return title
	}
	return ""
}

// decodeLinkTarget percent-decodes a link URL from the wire and re-escapes
// the characters that would break a markdown link destination.
func decodeLinkTarget(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return escapeLinkDestination(decoded), nil
}

var linkDestinationEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
)

func escapeLinkDestination(target string) string {
	return linkDestinationEscaper.Replace(target)
}

// codeSpan wraps content in a backtick fence wider than any backtick run
// inside it. Content that begins or ends with a backtick gets a single space
// of padding on both sides so the delimiters stay unambiguous.
func codeSpan(content string) string {
	fence := strings.Repeat("`", maxBacktickRun(content)+1)
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		content = " " + content + " "
	}
	return fence + content + fence
}

// maxBacktickRun returns the length of the longest consecutive backtick
// sequence in s.
func maxBacktickRun(s string) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == '`' {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}

// plainText flattens runs to unstyled literal text. Used for document titles
// and table cell fallbacks.
func plainText(runs []blocks.InlineRun) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.PlainText())
	}
	return b.String()
}
