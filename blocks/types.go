package blocks

// BlockType identifies the structural kind of a block record. The values
// mirror the document service's wire protocol and form a closed enumeration;
// codes outside the declared set render through the unknown-block policy.
type BlockType int

const (
	TypePage           BlockType = 1
	TypeText           BlockType = 2
	TypeHeading1       BlockType = 3
	TypeHeading2       BlockType = 4
	TypeHeading3       BlockType = 5
	TypeHeading4       BlockType = 6
	TypeHeading5       BlockType = 7
	TypeHeading6       BlockType = 8
	TypeHeading7       BlockType = 9
	TypeHeading8       BlockType = 10
	TypeHeading9       BlockType = 11
	TypeBullet         BlockType = 12
	TypeOrdered        BlockType = 13
	TypeCode           BlockType = 14
	TypeQuote          BlockType = 15
	TypeEquation       BlockType = 16
	TypeTodo           BlockType = 17
	TypeBitable        BlockType = 18
	TypeCallout        BlockType = 19
	TypeChatCard       BlockType = 20
	TypeDiagram        BlockType = 21
	TypeDivider        BlockType = 22
	TypeFile           BlockType = 23
	TypeGrid           BlockType = 24
	TypeGridColumn     BlockType = 25
	TypeIframe         BlockType = 26
	TypeImage          BlockType = 27
	TypeISV            BlockType = 28
	TypeMindnote       BlockType = 29
	TypeSheet          BlockType = 30
	TypeTable          BlockType = 31
	TypeTableCell      BlockType = 32
	TypeView           BlockType = 33
	TypeQuoteContainer BlockType = 34
	TypeTask           BlockType = 35
	TypeOKR            BlockType = 36
	TypeOKRObjective   BlockType = 37
	TypeOKRKeyResult   BlockType = 38
	TypeOKRProgress    BlockType = 39
	TypeAddOns         BlockType = 40
	TypeJiraIssue      BlockType = 41
	TypeWikiCatalog    BlockType = 42
	TypeBoard          BlockType = 43
	TypeAgenda         BlockType = 44
	TypeUndefined      BlockType = 999
)

// HeadingLevel reports the heading depth for heading block types. The second
// return is false for every non-heading type.
func (t BlockType) HeadingLevel() (int, bool) {
	if t < TypeHeading1 || t > TypeHeading9 {
		return 0, false
	}
	return int(t-TypeHeading1) + 1, true
}

// IsListItem reports whether the type renders as a markdown list item.
func (t BlockType) IsListItem() bool {
	switch t {
	case TypeBullet, TypeOrdered, TypeTodo:
		return true
	}
	return false
}

func (t BlockType) String() string {
	switch t {
	case TypePage:
		return "page"
	case TypeText:
		return "text"
	case TypeHeading1, TypeHeading2, TypeHeading3, TypeHeading4, TypeHeading5,
		TypeHeading6, TypeHeading7, TypeHeading8, TypeHeading9:
		level, _ := t.HeadingLevel()
		return "heading" + string(rune('0'+level))
	case TypeBullet:
		return "bullet"
	case TypeOrdered:
		return "ordered"
	case TypeCode:
		return "code"
	case TypeQuote:
		return "quote"
	case TypeEquation:
		return "equation"
	case TypeTodo:
		return "todo"
	case TypeCallout:
		return "callout"
	case TypeDivider:
		return "divider"
	case TypeImage:
		return "image"
	case TypeTable:
		return "table"
	case TypeTableCell:
		return "table_cell"
	case TypeQuoteContainer:
		return "quote_container"
	case TypeUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Link carries a hyperlink target for a text run. URLs arrive percent-encoded
// and are decoded during rendering, not at ingest.
type Link struct {
	URL string `json:"url"`
}

// RunStyle is the style flag set attached to a text run.
type RunStyle struct {
	Bold          bool  `json:"bold,omitempty"`
	Italic        bool  `json:"italic,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty"`
	Underline     bool  `json:"underline,omitempty"`
	InlineCode    bool  `json:"inline_code,omitempty"`
	Link          *Link `json:"link,omitempty"`
}

// TextRun is a span of literal text plus styling.
type TextRun struct {
	Content string   `json:"content"`
	Style   RunStyle `json:"text_element_style,omitempty"`
}

// MentionUser references a user inside inline content.
type MentionUser struct {
	UserID string `json:"user_id"`
}

// MentionDoc references another document inside inline content.
type MentionDoc struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// InlineEquation is a TeX expression embedded in inline content.
type InlineEquation struct {
	Content string `json:"content"`
}

// InlineRun is one element of a text-bearing payload. Exactly one of the
// pointer fields is expected to be set; runs with none set are skipped with a
// warning during rendering.
type InlineRun struct {
	TextRun     *TextRun        `json:"text_run,omitempty"`
	MentionUser *MentionUser    `json:"mention_user,omitempty"`
	MentionDoc  *MentionDoc     `json:"mention_doc,omitempty"`
	Equation    *InlineEquation `json:"equation,omitempty"`
}

// PlainText extracts the literal content of a run without any styling.
func (r InlineRun) PlainText() string {
	switch {
	case r.TextRun != nil:
		return r.TextRun.Content
	case r.MentionUser != nil:
		return "@" + r.MentionUser.UserID
	case r.MentionDoc != nil:
		return r.MentionDoc.Title
	case r.Equation != nil:
		return r.Equation.Content
	}
	return ""
}

// TextStyle carries block-level formatting for text-bearing payloads.
type TextStyle struct {
	Align  int  `json:"align,omitempty"`
	Done   bool `json:"done,omitempty"`
	Folded bool `json:"folded,omitempty"`
}

// TextPayload is the body of page, text, heading, list, quote, and todo
// blocks: an ordered run sequence plus block-level style.
type TextPayload struct {
	Elements []InlineRun `json:"elements"`
	Style    TextStyle   `json:"style,omitempty"`
}

// CodeStyle carries code block formatting.
type CodeStyle struct {
	Language int  `json:"language,omitempty"`
	Wrap     bool `json:"wrap,omitempty"`
}

// CodePayload is the body of a code block. Content is emitted verbatim.
type CodePayload struct {
	Elements []InlineRun `json:"elements"`
	Style    CodeStyle   `json:"style,omitempty"`
}

// CalloutStyle carries the marker and background metadata of a callout.
type CalloutStyle struct {
	EmojiID         string `json:"emoji_id,omitempty"`
	BackgroundColor int    `json:"background_color,omitempty"`
	BorderColor     int    `json:"border_color,omitempty"`
}

// CalloutPayload is the body of a callout block. Content lives in children.
type CalloutPayload struct {
	Style CalloutStyle `json:"style,omitempty"`
}

// ImagePayload is the body of an image block. DownloadURL is resolved by the
// fetch collaborator; when absent the renderer emits a placeholder reference.
type ImagePayload struct {
	Token       string `json:"token"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// TableProperty captures the declared grid dimensions of a table.
type TableProperty struct {
	RowSize    int `json:"row_size"`
	ColumnSize int `json:"column_size"`
}

// TablePayload is the body of a table block. Cells lists cell block ids in
// row-major order; when empty the table's children are used instead.
type TablePayload struct {
	Property TableProperty `json:"property"`
	Cells    []string      `json:"cells,omitempty"`
}

// EquationPayload is the body of a display equation block.
type EquationPayload struct {
	Content string `json:"content"`
}

// BlockRecord is one structural unit of a document as delivered by the fetch
// collaborator. The ordered Children array is the single source of truth for
// document order; assembly never re-sorts it.
type BlockRecord struct {
	ID       string    `json:"block_id"`
	Type     BlockType `json:"block_type"`
	ParentID string    `json:"parent_id,omitempty"`
	Children []string  `json:"children,omitempty"`

	Page     *TextPayload     `json:"page,omitempty"`
	Text     *TextPayload     `json:"text,omitempty"`
	Heading1 *TextPayload     `json:"heading1,omitempty"`
	Heading2 *TextPayload     `json:"heading2,omitempty"`
	Heading3 *TextPayload     `json:"heading3,omitempty"`
	Heading4 *TextPayload     `json:"heading4,omitempty"`
	Heading5 *TextPayload     `json:"heading5,omitempty"`
	Heading6 *TextPayload     `json:"heading6,omitempty"`
	Heading7 *TextPayload     `json:"heading7,omitempty"`
	Heading8 *TextPayload     `json:"heading8,omitempty"`
	Heading9 *TextPayload     `json:"heading9,omitempty"`
	Bullet   *TextPayload     `json:"bullet,omitempty"`
	Ordered  *TextPayload     `json:"ordered,omitempty"`
	Quote    *TextPayload     `json:"quote,omitempty"`
	Todo     *TextPayload     `json:"todo,omitempty"`
	Code     *CodePayload     `json:"code,omitempty"`
	Callout  *CalloutPayload  `json:"callout,omitempty"`
	Image    *ImagePayload    `json:"image,omitempty"`
	Table    *TablePayload    `json:"table,omitempty"`
	Equation *EquationPayload `json:"equation,omitempty"`
}

// TextBody returns the text payload matching the record's declared type, or
// nil when the type carries no inline runs.
func (r *BlockRecord) TextBody() *TextPayload {
	switch r.Type {
	case TypePage:
		return r.Page
	case TypeText:
		return r.Text
	case TypeHeading1:
		return r.Heading1
	case TypeHeading2:
		return r.Heading2
	case TypeHeading3:
		return r.Heading3
	case TypeHeading4:
		return r.Heading4
	case TypeHeading5:
		return r.Heading5
	case TypeHeading6:
		return r.Heading6
	case TypeHeading7:
		return r.Heading7
	case TypeHeading8:
		return r.Heading8
	case TypeHeading9:
		return r.Heading9
	case TypeBullet:
		return r.Bullet
	case TypeOrdered:
		return r.Ordered
	case TypeQuote:
		return r.Quote
	case TypeTodo:
		return r.Todo
	}
	return nil
}

// Elements returns the record's inline runs regardless of payload kind.
func (r *BlockRecord) Elements() []InlineRun {
	if body := r.TextBody(); body != nil {
		return body.Elements
	}
	if r.Code != nil {
		return r.Code.Elements
	}
	return nil
}
