// internal/fax/document/block.go
package document

// Package document holds the renderable content model shared by the
// builders, the pagination planner and the PDF renderer. The block set is a
// sealed tagged union: adding a kind forces every switch over Block.Kind()
// in planner and renderer to be revisited.

// BlockKind discriminates the content block union.
type BlockKind int

const (
	KindHeader BlockKind = iota
	KindFooter
	KindText
	KindBlankSpace
	KindCircleOption
	KindCheckbox
	KindImage
)

func (k BlockKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindFooter:
		return "footer"
	case KindText:
		return "text"
	case KindBlankSpace:
		return "blank_space"
	case KindCircleOption:
		return "circle_option"
	case KindCheckbox:
		return "checkbox"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Alignment of a drawn text block.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Block is the sealed union of renderable content elements. Only the types
// in this package implement it.
type Block interface {
	Kind() BlockKind
}

// Header is a page or section heading drawn at its literal point size.
type Header struct {
	Text         string
	FontSize     float64 // points
	Alignment    Alignment
	MarginBottom float64 // points
}

func (Header) Kind() BlockKind { return KindHeader }

// Footer is the traceability strip pinned into the reserved footer region of
// every page. It is injected by the planner, never by builders.
type Footer struct {
	Text      string
	FontSize  float64 // points, >= FooterFontFloor
	Bold      bool
	Alignment Alignment
	MarginTop float64 // points
}

func (Footer) Kind() BlockKind { return KindFooter }

// Text is word-wrapped body copy. FontSize is expressed in "visual units"
// and divided by VisualUnitScale before drawing; zero means the default body
// size. See layout.go for the unit quirk.
type Text struct {
	Text         string
	FontSize     float64 // visual units, 0 = default
	Bold         bool
	Alignment    Alignment // "" = left
	LineGap      float64   // points added between wrapped lines
	MarginTop    float64   // points
	MarginBottom float64   // points
}

func (Text) Kind() BlockKind { return KindText }

// PointSize resolves the rendered point size from the visual-unit value.
func (t Text) PointSize() float64 {
	if t.FontSize <= 0 {
		return DefaultBodyVisual / VisualUnitScale
	}
	return t.FontSize / VisualUnitScale
}

// Align resolves the effective alignment; unset defaults to left.
func (t Text) Align() Alignment {
	if t.Alignment == "" {
		return AlignLeft
	}
	return t.Alignment
}

// BlankSpace advances the cursor without drawing. Height is expressed in the
// source's historical unit and divided by BlankSpaceDivisor (layout.go).
type BlankSpace struct {
	Height float64
}

func (BlankSpace) Kind() BlockKind { return KindBlankSpace }

// Advance is the cursor movement in points this blank space produces.
func (b BlankSpace) Advance() float64 {
	return b.Height / BlankSpaceDivisor * BaseLineHeight
}

// Option is one choosable row of a CircleOption or Checkbox block.
// PriceYen is nil when the row has no price suffix.
type Option struct {
	Label    string // selection marker, A-E
	Text     string
	PriceYen *int
}

// CircleOption is a radio-style option list; one circular glyph per row.
type CircleOption struct {
	Options []Option
}

func (CircleOption) Kind() BlockKind { return KindCircleOption }

// Checkbox is an option list drawn with square glyphs.
type Checkbox struct {
	Options []Option
}

func (Checkbox) Kind() BlockKind { return KindCheckbox }

// Image embeds a remote image. When the fetch fails the renderer draws
// Fallback (or Caption) as text instead of aborting the document.
type Image struct {
	URL      string
	Caption  string
	Fallback string
}

func (Image) Kind() BlockKind { return KindImage }

// FallbackText is what the renderer draws when the image bytes are missing.
func (i Image) FallbackText() string {
	if i.Fallback != "" {
		return i.Fallback
	}
	if i.Caption != "" {
		return i.Caption
	}
	return i.URL
}

// Page is one finalized fax page. PageNumber is 1-indexed; TotalPages is
// identical across all pages of one Template.
type Page struct {
	Content    []Block
	PageNumber int
	TotalPages int
}

// FooterBlock returns the page footer, which the planner guarantees to be
// present exactly once per page.
func (p Page) FooterBlock() (Footer, bool) {
	for _, b := range p.Content {
		if f, ok := b.(Footer); ok {
			return f, true
		}
	}
	return Footer{}, false
}

// TemplateType tags a Template with its originating use case.
type TemplateType string

const (
	TypeEmailReply           TemplateType = "email-reply"
	TypeGeneralInquiry       TemplateType = "general-inquiry"
	TypeProductSelection     TemplateType = "product-selection"
	TypeAppointmentSelection TemplateType = "appointment-selection"
	TypeWelcome              TemplateType = "welcome"
	TypeComplaint            TemplateType = "complaint-notification"
)

// Template is the full multi-page document model for one outbound fax.
// Constructed once, immutable thereafter, consumed exactly once by the
// renderer and never persisted by this engine.
type Template struct {
	Type        TemplateType
	ReferenceID string
	Pages       []Page
	Context     map[string]interface{}
}
