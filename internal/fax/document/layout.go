// internal/fax/document/layout.go
package document

// Page geometry in PDF points (1pt = 1/72"). The medium is fixed: A4
// portrait, the page size every Japanese consumer fax accepts.
const (
	PageWidthPt  = 595.28
	PageHeightPt = 841.89

	MarginLeft   = 40.0
	MarginRight  = 40.0
	MarginTop    = 50.0
	MarginBottom = 50.0

	// FooterReservedHeight is carved out of every page before any flowed
	// content is budgeted; the footer never competes with body blocks.
	FooterReservedHeight = 60.0
)

// ContentWidth is the horizontal space available to flowed blocks.
const ContentWidth = PageWidthPt - MarginLeft - MarginRight

// UsableHeight is the per-page budget the planner fills.
const UsableHeight = PageHeightPt - MarginTop - MarginBottom - FooterReservedHeight

// Font sizing. Body text sizes arrive in "visual units" and are divided by
// VisualUnitScale at draw time, while Header/Footer sizes are literal
// points. The split convention is preserved from the original output format;
// both constants exist so the quirk lives in exactly one place.
// TODO: collapse to a single point-size convention once downstream
// golden-fax comparisons are retired.
const (
	VisualUnitScale   = 3.0
	DefaultBodyVisual = 36.0 // default body text = 12pt

	// BlankSpaceDivisor converts a BlankSpace height into line units.
	BlankSpaceDivisor = 20.0

	// BaseLineHeight is the 12pt body line advance.
	BaseLineHeight = 16.8

	// LineSpacing multiplies the point size to get a line advance.
	LineSpacing = 1.4
)

// Footer sizing. FooterFontFloor is the accessibility floor for low-vision
// and elderly recipients; footers always render bold at or above it.
const (
	FooterFontFloor = 12.0
	FooterFontSize  = 14.0
)

// Option rows and images use fixed heights so the planner's estimate and the
// renderer's advance agree exactly.
const (
	OptionRowHeight  = 30.0
	ImageBlockHeight = 180.0
)

// HeaderLineFactor converts a header font size to its line advance.
const HeaderLineFactor = 1.25
