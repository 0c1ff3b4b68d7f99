package render

// UnknownBlockPolicy selects how blocks with unrecognised type codes render.
type UnknownBlockPolicy string

const (
	// UnknownBlockSkip drops the block and records a warning.
	UnknownBlockSkip UnknownBlockPolicy = "skip"
	// UnknownBlockPlaceholder emits an HTML comment naming the type code so
	// missing content stays visible in the output.
	UnknownBlockPlaceholder UnknownBlockPolicy = "placeholder"
)

// UnderlineRendering selects how underlined runs render. Markdown has no
// native underline, so the choice is an inline HTML tag or dropping the flag.
type UnderlineRendering string

const (
	UnderlineHTMLTag UnderlineRendering = "html_tag"
	UnderlineDrop    UnderlineRendering = "drop"
)

const defaultListIndentWidth = 4

// Options is the per-conversion configuration surface.
type Options struct {
	// UnknownBlockPolicy defaults to UnknownBlockSkip.
	UnknownBlockPolicy UnknownBlockPolicy
	// LanguageOverrides patches the code fence language table by numeric code.
	LanguageOverrides map[int]string
	// ListIndentWidth is the number of spaces added per list nesting level.
	// Defaults to 4.
	ListIndentWidth int
	// UnderlineRendering defaults to UnderlineHTMLTag.
	UnderlineRendering UnderlineRendering
}

func (o Options) normalized() Options {
	if o.UnknownBlockPolicy == "" {
		o.UnknownBlockPolicy = UnknownBlockSkip
	}
	if o.ListIndentWidth <= 0 {
		o.ListIndentWidth = defaultListIndentWidth
	}
	if o.UnderlineRendering == "" {
		o.UnderlineRendering = UnderlineHTMLTag
	}
	return o
}
