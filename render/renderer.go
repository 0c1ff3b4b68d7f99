package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-docmark/blocks"
)

const maxMarkdownHeadingLevel = 6

// renderNode maps one tree node to markdown text. The boolean is false when
// the node contributes nothing to the document. Every declared block type is
// matched explicitly; codes outside the enumeration fall through to the
// unknown-block policy.
func (c *composer) renderNode(rec *blocks.BlockRecord) (string, bool) {
	switch rec.Type {
	case blocks.TypePage:
		// Nested page nodes render as transparent containers.
		return joinChunks(c.childChunks(rec)), true

	case blocks.TypeText:
		return c.renderText(rec), true

	case blocks.TypeHeading1, blocks.TypeHeading2, blocks.TypeHeading3,
		blocks.TypeHeading4, blocks.TypeHeading5, blocks.TypeHeading6,
		blocks.TypeHeading7, blocks.TypeHeading8, blocks.TypeHeading9:
		return c.renderHeading(rec), true

	case blocks.TypeBullet:
		return c.renderListItem(rec, "- "), true

	case blocks.TypeOrdered:
		marker := fmt.Sprintf("%d. ", c.numbering.next(rec.ParentID))
		return c.renderListItem(rec, marker), true

	case blocks.TypeTodo:
		return c.renderListItem(rec, todoMarker(rec)), true

	case blocks.TypeCode:
		return c.renderCode(rec), true

	case blocks.TypeQuote:
		return c.renderQuote(rec), true

	case blocks.TypeQuoteContainer:
		return prefixLines(joinChunks(c.childChunks(rec)), "> "), true

	case blocks.TypeCallout:
		return c.renderCallout(rec), true

	case blocks.TypeEquation:
		if rec.Equation == nil || strings.TrimSpace(rec.Equation.Content) == "" {
			return "", false
		}
		return "$$" + strings.TrimSpace(rec.Equation.Content) + "$$", true

	case blocks.TypeDivider:
		return "---", true

	case blocks.TypeImage:
		return c.renderImage(rec), true

	case blocks.TypeTable:
		return c.renderTable(rec), true

	case blocks.TypeTableCell:
		// Cells render inside their owning table, never in sibling flow.
		return "", false

	case blocks.TypeBitable, blocks.TypeChatCard, blocks.TypeDiagram,
		blocks.TypeFile, blocks.TypeGrid, blocks.TypeGridColumn,
		blocks.TypeIframe, blocks.TypeISV, blocks.TypeMindnote,
		blocks.TypeSheet, blocks.TypeView, blocks.TypeTask,
		blocks.TypeOKR, blocks.TypeOKRObjective, blocks.TypeOKRKeyResult,
		blocks.TypeOKRProgress, blocks.TypeAddOns, blocks.TypeJiraIssue,
		blocks.TypeWikiCatalog, blocks.TypeBoard, blocks.TypeAgenda,
		blocks.TypeUndefined:
		return c.renderUnsupported(rec)

	default:
		return c.renderUnsupported(rec)
	}
}

func (c *composer) renderText(rec *blocks.BlockRecord) string {
	content := ""
	if body := rec.TextBody(); body != nil {
		content = renderRuns(body.Elements, c.opts, c.warnings, rec.ID)
	}

	children := c.childChunks(rec)
	if content == "" {
		return joinChunks(children)
	}
	return joinChunks(append([]chunk{{text: content, kind: rec.Type}}, children...))
}

func (c *composer) renderHeading(rec *blocks.BlockRecord) string {
	level, _ := rec.Type.HeadingLevel()
	if level > maxMarkdownHeadingLevel {
		c.warnings.add(WarningHeadingClamped, rec.ID, "heading level %d clamped to %d", level, maxMarkdownHeadingLevel)
		level = maxMarkdownHeadingLevel
	}

	content := ""
	if body := rec.TextBody(); body != nil {
		content = renderRuns(body.Elements, c.opts, c.warnings, rec.ID)
	}

	var own []chunk
	if content != "" {
		own = []chunk{{text: strings.Repeat("#", level) + " " + content, kind: rec.Type}}
	}
	return joinChunks(append(own, c.childChunks(rec)...))
}

func todoMarker(rec *blocks.BlockRecord) string {
	if body := rec.TextBody(); body != nil && body.Style.Done {
		return "- [x] "
	}
	return "- [ ] "
}

// renderListItem emits the marker line and nests rendered children one
// indent level deeper. Indentation is relative, so deeper nesting
// accumulates naturally as chunks bubble up.
func (c *composer) renderListItem(rec *blocks.BlockRecord, marker string) string {
	content := ""
	if body := rec.TextBody(); body != nil {
		content = renderRuns(body.Elements, c.opts, c.warnings, rec.ID)
	}
	if content == "" {
		return joinChunks(c.childChunks(rec))
	}

	out := marker + content
	if nested := joinChunks(c.childChunks(rec)); nested != "" {
		indent := strings.Repeat(" ", c.opts.ListIndentWidth)
		out += "\n" + indentLines(nested, indent)
	}
	return out
}

func (c *composer) renderCode(rec *blocks.BlockRecord) string {
	if rec.Code == nil {
		return ""
	}

	content := plainText(rec.Code.Elements)
	language := languageName(rec.Code.Style.Language, c.opts.LanguageOverrides)

	width := maxBacktickRun(content) + 1
	if width < 3 {
		width = 3
	}
	fence := strings.Repeat("`", width)

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(language)
	b.WriteString("\n")
	if content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}
	b.WriteString(fence)
	return b.String()
}

func (c *composer) renderQuote(rec *blocks.BlockRecord) string {
	content := ""
	if body := rec.TextBody(); body != nil {
		content = renderRuns(body.Elements, c.opts, c.warnings, rec.ID)
	}

	var own []chunk
	if content != "" {
		own = []chunk{{text: content, kind: rec.Type}}
	}
	combined := joinChunks(append(own, c.childChunks(rec)...))
	if combined == "" {
		return ""
	}
	return prefixLines(combined, "> ")
}

// calloutMarkers maps the document service's emoji identifiers to the glyph
// prepended to a callout. Unknown identifiers fall back to the default.
var calloutMarkers = map[string]string{
	"bulb":             "💡",
	"star":             "⭐",
	"fire":             "🔥",
	"pushpin":          "📌",
	"memo":             "📝",
	"warning":          "⚠️",
	"question":         "❓",
	"exclamation":      "❗",
	"white_check_mark": "✅",
	"x":                "❌",
}

const defaultCalloutMarker = "💡"

func (c *composer) renderCallout(rec *blocks.BlockRecord) string {
	body := joinChunks(c.childChunks(rec))
	if body == "" {
		return ""
	}

	marker := defaultCalloutMarker
	if rec.Callout != nil {
		if glyph, ok := calloutMarkers[rec.Callout.Style.EmojiID]; ok {
			marker = glyph
		}
	}

	lines := strings.Split(body, "\n")
	lines[0] = marker + " " + lines[0]
	return prefixLines(strings.Join(lines, "\n"), "> ")
}

func (c *composer) renderImage(rec *blocks.BlockRecord) string {
	if rec.Image == nil || rec.Image.Token == "" {
		c.warnings.add(WarningMissingAsset, rec.ID, "image block carries no asset token")
		return ""
	}

	img := rec.Image
	alt := imageAltText(img)

	target := img.DownloadURL
	if target == "" {
		c.warnings.add(WarningMissingAsset, rec.ID, "image %s has no resolved URL", img.Token)
		target = "attachment://" + img.Token
	}
	return "![" + alt + "](" + escapeLinkDestination(target) + ")"
}

func imageAltText(img *blocks.ImagePayload) string {
	token := img.Token
	if len(token) > 8 {
		token = token[:8]
	}
	alt := "image-" + token
	if img.Width > 0 && img.Height > 0 {
		alt += fmt.Sprintf(" (%dx%d)", img.Width, img.Height)
	}
	return alt
}

func (c *composer) renderUnsupported(rec *blocks.BlockRecord) (string, bool) {
	c.warnings.add(WarningUnsupportedBlock, rec.ID, "block type %d has no markdown rendering", rec.Type)
	if c.opts.UnknownBlockPolicy == UnknownBlockPlaceholder {
		return fmt.Sprintf("<!-- unsupported block type %d -->", rec.Type), true
	}
	return "", false
}
