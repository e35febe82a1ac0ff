// internal/fax/render/renderer.go

// Package render turns a finalized Template into PDF bytes. One call is one
// linear pass over the pages; nothing persists across calls and a partial
// buffer is never returned. Streams are written uncompressed so fax
// rasterizers (and tests) can inspect the page text directly.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/fax/document"
	"faxgen/internal/fax/paginate"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

const fontFamily = "Helvetica"

// Renderer emits fax PDFs. Safe for concurrent use: all mutable drawing
// state lives in the per-call render context.
type Renderer struct {
	fetcher *ImageFetcher
	logger  *zap.Logger
}

func New(fetcher *ImageFetcher, logger *zap.Logger) *Renderer {
	return &Renderer{fetcher: fetcher, logger: logger}
}

// Render draws every page of tmpl and returns the complete PDF buffer.
// Image fetches run concurrently before drawing starts; a failed fetch
// degrades that slot to fallback text. Cancelling ctx aborts outstanding
// fetches and discards all output.
func (r *Renderer) Render(ctx context.Context, tmpl document.Template) ([]byte, error) {
	if len(tmpl.Pages) == 0 {
		return nil, apperrors.NewRenderFailedError(fmt.Errorf("template %s has no pages", tmpl.ReferenceID))
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRenderFailedError(err)
	}

	images := r.prefetch(ctx, tmpl)
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRenderFailedError(err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(document.MarginLeft, document.MarginTop, document.MarginRight)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	rc := &renderContext{pdf: pdf, tr: tr, images: images}

	for _, page := range tmpl.Pages {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewRenderFailedError(err)
		}
		if err := rc.drawPage(page); err != nil {
			return nil, err
		}
	}

	if pdf.Err() {
		return nil, apperrors.NewRenderFailedError(pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewRenderFailedError(err)
	}

	r.logger.Debug("template rendered",
		zap.String("referenceId", tmpl.ReferenceID),
		zap.Int("pages", len(tmpl.Pages)),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *Renderer) prefetch(ctx context.Context, tmpl document.Template) map[string]FetchedImage {
	if r.fetcher == nil {
		return nil
	}
	var urls []string
	seen := map[string]bool{}
	for _, page := range tmpl.Pages {
		for _, b := range page.Content {
			if img, ok := b.(document.Image); ok && img.URL != "" && !seen[img.URL] {
				seen[img.URL] = true
				urls = append(urls, img.URL)
			}
		}
	}
	return r.fetcher.FetchAll(ctx, urls)
}

// renderContext is the scoped mutable drawing state for one render pass.
type renderContext struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]FetchedImage
	y      float64
}

func (rc *renderContext) drawPage(page document.Page) error {
	rc.pdf.AddPage()
	rc.y = document.MarginTop

	for _, block := range page.Content {
		switch b := block.(type) {
		case document.Header:
			rc.drawHeader(b)
		case document.Footer:
			rc.drawFooter(b)
		case document.Text:
			rc.drawText(b)
		case document.BlankSpace:
			rc.y += b.Advance()
		case document.CircleOption:
			rc.drawOptions(b.Options, true)
		case document.Checkbox:
			rc.drawOptions(b.Options, false)
		case document.Image:
			rc.drawImage(b)
		default:
			return apperrors.NewRenderFailedError(fmt.Errorf("unhandled block kind %T on page %d", block, page.PageNumber))
		}
	}
	return nil
}

func (rc *renderContext) drawHeader(b document.Header) {
	rc.pdf.SetFont(fontFamily, "B", b.FontSize)
	lineH := b.FontSize * document.HeaderLineFactor
	rc.pdf.SetXY(document.MarginLeft, rc.y)
	rc.pdf.CellFormat(document.ContentWidth, lineH, rc.tr(b.Text), "", 0, alignStr(b.Alignment), false, 0, "")
	rc.y += lineH + b.MarginBottom
}

// drawFooter pins the traceability strip into the reserved region at the
// bottom of the page, independent of where the body cursor stopped.
func (rc *renderContext) drawFooter(b document.Footer) {
	size := b.FontSize
	if size < document.FooterFontFloor {
		size = document.FooterFontFloor
	}
	style := ""
	if b.Bold {
		style = "B"
	}
	rc.pdf.SetFont(fontFamily, style, size)

	lineH := size * document.LineSpacing
	y := document.PageHeightPt - document.MarginBottom - document.FooterReservedHeight + b.MarginTop
	for _, line := range strings.Split(b.Text, "\n") {
		rc.pdf.SetXY(document.MarginLeft, y)
		rc.pdf.CellFormat(document.ContentWidth, lineH, rc.tr(line), "", 0, alignStr(b.Alignment), false, 0, "")
		y += lineH
	}
}

func (rc *renderContext) drawText(b document.Text) {
	pt := b.PointSize()
	style := ""
	if b.Bold {
		style = "B"
	}
	rc.pdf.SetFont(fontFamily, style, pt)

	lineH := pt*document.LineSpacing + b.LineGap
	rc.y += b.MarginTop
	for _, line := range paginate.WrapText(b.Text, pt) {
		rc.pdf.SetXY(document.MarginLeft, rc.y)
		rc.pdf.CellFormat(document.ContentWidth, lineH, rc.tr(line), "", 0, alignStr(b.Align()), false, 0, "")
		rc.y += lineH
	}
	rc.y += b.MarginBottom
}

func (rc *renderContext) drawOptions(options []document.Option, circle bool) {
	rc.pdf.SetFont(fontFamily, "", document.DefaultBodyVisual/document.VisualUnitScale)

	for _, opt := range options {
		mid := rc.y + document.OptionRowHeight/2
		if circle {
			rc.pdf.Circle(document.MarginLeft+8, mid, 7, "D")
		} else {
			rc.pdf.Rect(document.MarginLeft+1, mid-7, 14, 14, "D")
		}

		text := fmt.Sprintf("%s. %s", opt.Label, opt.Text)
		if opt.PriceYen != nil {
			text += fmt.Sprintf(" - ¥%d", *opt.PriceYen)
		}
		rc.pdf.SetXY(document.MarginLeft+24, rc.y)
		rc.pdf.CellFormat(document.ContentWidth-24, document.OptionRowHeight, rc.tr(text), "", 0, "L", false, 0, "")
		rc.y += document.OptionRowHeight
	}
}

// drawImage places the fetched bitmap, or its text fallback when the fetch
// failed. Either way the cursor advances by the fixed image slot height the
// planner budgeted.
func (rc *renderContext) drawImage(b document.Image) {
	img, ok := rc.images[b.URL]
	if !ok {
		rc.pdf.SetFont(fontFamily, "I", document.DefaultBodyVisual/document.VisualUnitScale)
		rc.pdf.SetXY(document.MarginLeft, rc.y)
		rc.pdf.CellFormat(document.ContentWidth, document.BaseLineHeight, rc.tr(b.FallbackText()), "", 0, "L", false, 0, "")
		rc.y += document.ImageBlockHeight
		return
	}

	opts := gofpdf.ImageOptions{ImageType: img.Type}
	rc.pdf.RegisterImageOptionsReader(b.URL, opts, bytes.NewReader(img.Data))
	rc.pdf.ImageOptions(b.URL, document.MarginLeft, rc.y+5, 0, document.ImageBlockHeight-10, false, opts, 0, "")
	rc.y += document.ImageBlockHeight
}

func alignStr(a document.Alignment) string {
	switch a {
	case document.AlignCenter:
		return "C"
	case document.AlignRight:
		return "R"
	default:
		return "L"
	}
}
