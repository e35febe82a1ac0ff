// internal/fax/paginate/planner.go

// Package paginate splits an unpaginated block list into pages. Heights are
// estimated with the same constants the renderer draws with, so a page that
// fits here fits on paper. The footer region is excluded from the budget up
// front; footers are injected after page counts are final, never by builders.
package paginate

import (
	"fmt"
	"strings"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/fax/document"
)

// footerSupportText is the static contact line appended to every page footer.
const footerSupportText = "Questions? Call Faxi toll-free: 0120-905-770"

// avgCharWidthFactor estimates Helvetica's average glyph width as a fraction
// of the point size. Slightly generous so the estimate errs toward extra
// lines, never toward overflow.
const avgCharWidthFactor = 0.52

// Paginate assigns blocks to pages under the per-page height budget, stamps
// 1-indexed page numbers and the shared total, and injects one footer per
// page carrying refID and the page counter. An empty block list still yields
// one page with a neutral placeholder.
func Paginate(blocks []document.Block, refID string) ([]document.Page, error) {
	if len(blocks) == 0 {
		blocks = []document.Block{
			document.Header{Text: "Faxi", FontSize: 24, Alignment: document.AlignCenter, MarginBottom: 8},
			document.Text{Text: "This document contains no content.", Alignment: document.AlignCenter},
		}
	}

	var pages [][]document.Block
	var current []document.Block
	var used float64

	closePage := func() {
		if len(current) > 0 {
			pages = append(pages, current)
			current = nil
			used = 0
		}
	}

	queue := make([]document.Block, len(blocks))
	copy(queue, blocks)

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		h := EstimateHeight(block)
		if used+h <= document.UsableHeight {
			current = append(current, block)
			used += h
			continue
		}

		// Block does not fit the remaining budget. Oversized Text is split at
		// line granularity; everything else retries on a fresh page.
		if txt, ok := block.(document.Text); ok && h > document.UsableHeight {
			head, tail, splitErr := splitText(txt, document.UsableHeight-used)
			if splitErr == nil && head != nil {
				current = append(current, *head)
				closePage()
				if tail.Text != "" {
					queue = append([]document.Block{tail}, queue...)
				}
				continue
			}
			// nothing fit on this page; close it and split against a full page
			closePage()
			head, tail, splitErr = splitText(txt, document.UsableHeight)
			if splitErr != nil {
				return nil, apperrors.NewPaginationOverflowError(splitErr.Error())
			}
			current = append(current, *head)
			used = EstimateHeight(*head)
			if tail.Text != "" {
				queue = append([]document.Block{tail}, queue...)
			}
			continue
		}

		closePage()
		if h > document.UsableHeight {
			// Non-splittable block taller than a page: force placement alone
			// rather than loop forever.
			current = append(current, block)
			closePage()
			continue
		}
		current = append(current, block)
		used = h
	}
	closePage()

	if len(pages) == 0 {
		return nil, apperrors.NewPaginationOverflowError("planner produced zero pages")
	}

	total := len(pages)
	result := make([]document.Page, total)
	for i, content := range pages {
		result[i] = document.Page{
			Content:    append(content, footerFor(refID, i+1, total)),
			PageNumber: i + 1,
			TotalPages: total,
		}
	}
	return result, nil
}

// footerFor builds the traceability footer for one page. The size never
// drops below the accessibility floor and the strip always renders bold.
func footerFor(refID string, pageNumber, totalPages int) document.Footer {
	size := document.FooterFontSize
	if size < document.FooterFontFloor {
		size = document.FooterFontFloor
	}
	return document.Footer{
		Text:      fmt.Sprintf("Ref: %s | Page %d of %d", refID, pageNumber, totalPages) + "\n" + footerSupportText,
		FontSize:  size,
		Bold:      true,
		Alignment: document.AlignCenter,
	}
}

// EstimateHeight returns the vertical space a block will occupy when drawn.
// The renderer advances its cursor by exactly these amounts.
func EstimateHeight(block document.Block) float64 {
	switch b := block.(type) {
	case document.Header:
		return b.FontSize*document.HeaderLineFactor + b.MarginBottom
	case document.Footer:
		pt := b.FontSize
		lines := float64(len(strings.Split(b.Text, "\n")))
		return b.MarginTop + lines*pt*document.LineSpacing
	case document.Text:
		pt := b.PointSize()
		lineH := pt*document.LineSpacing + b.LineGap
		lines := float64(countWrappedLines(b.Text, pt))
		return b.MarginTop + lines*lineH + b.MarginBottom
	case document.BlankSpace:
		return b.Advance()
	case document.CircleOption:
		return float64(len(b.Options)) * document.OptionRowHeight
	case document.Checkbox:
		return float64(len(b.Options)) * document.OptionRowHeight
	case document.Image:
		return document.ImageBlockHeight
	}
	return 0
}

// countWrappedLines simulates greedy word wrap at content width.
func countWrappedLines(text string, pointSize float64) int {
	return len(WrapText(text, pointSize))
}

// WrapText performs the greedy word wrap the height estimate, the text
// splitter and the renderer all share; drawing the returned lines one per
// row reproduces exactly the height EstimateHeight budgeted. Explicit
// newlines always break.
func WrapText(text string, pointSize float64) []string {
	maxChars := int(document.ContentWidth / (pointSize * avgCharWidthFactor))
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len([]rune(line))+1+len([]rune(word)) <= maxChars {
				line += " " + word
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}

// splitText cuts a Text block so the head fits within budget points. The
// tail keeps the block's styling with no top margin. Returns an error when
// not even one line fits.
func splitText(txt document.Text, budget float64) (*document.Text, document.Text, error) {
	pt := txt.PointSize()
	lineH := pt*document.LineSpacing + txt.LineGap

	fit := int((budget - txt.MarginTop) / lineH)
	if fit < 1 {
		return nil, document.Text{}, fmt.Errorf("text block: no line fits in %.1fpt budget", budget)
	}

	lines := WrapText(txt.Text, pt)
	if fit >= len(lines) {
		if txt.MarginTop+float64(len(lines))*lineH+txt.MarginBottom <= budget {
			return &txt, document.Text{}, nil
		}
		// every line fits but the bottom margin would spill into the
		// footer region; keep the text whole and drop the margin
		head := txt
		head.MarginBottom = 0
		return &head, document.Text{}, nil
	}

	head := txt
	head.Text = strings.Join(lines[:fit], "\n")
	head.MarginBottom = 0

	tail := txt
	tail.Text = strings.Join(lines[fit:], "\n")
	tail.MarginTop = 0

	return &head, tail, nil
}
