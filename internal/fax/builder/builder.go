// internal/fax/builder/builder.go

// Package builder maps validated domain DTOs to unpaginated block lists.
// Builders are stateless free functions; footers are injected later by the
// pagination planner so every page gets one, not just the last.
package builder

import (
	"faxgen/internal/fax/document"
)

const (
	// BrandName appears in the header of every outbound fax.
	BrandName = "Faxi"

	// SupportLine is the toll-free number printed alongside the brand.
	SupportLine = "0120-905-770"

	// MaxTitleLen truncates product titles so a row never wraps.
	MaxTitleLen = 60

	// MaxOptionsPerChunk caps each option block at the marker alphabet size.
	MaxOptionsPerChunk = 5
)

// selectionMarkers is the ordered marker alphabet for choosable rows.
const selectionMarkers = "ABCDE"

// brandHeader emits the standard document header: brand line, document
// title, and a separating blank space.
func brandHeader(title string) []document.Block {
	return []document.Block{
		document.Header{
			Text:         BrandName,
			FontSize:     24,
			Alignment:    document.AlignCenter,
			MarginBottom: 8,
		},
		document.Header{
			Text:         title,
			FontSize:     18,
			Alignment:    document.AlignCenter,
			MarginBottom: 12,
		},
		document.BlankSpace{Height: 20},
	}
}

// markerFor returns the selection marker for a zero-based row index within
// one option chunk.
func markerFor(idx int) string {
	if idx < 0 || idx >= len(selectionMarkers) {
		return ""
	}
	return string(selectionMarkers[idx])
}

// truncateTitle trims a title to MaxTitleLen runes, appending an ellipsis
// when anything was cut.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLen {
		return title
	}
	return string(runes[:MaxTitleLen-3]) + "..."
}

// chunkOptions splits rows into CircleOption blocks of at most
// MaxOptionsPerChunk entries, reassigning markers A-E within each chunk.
func chunkOptions(rows []document.Option) []document.Block {
	var blocks []document.Block
	for start := 0; start < len(rows); start += MaxOptionsPerChunk {
		end := start + MaxOptionsPerChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := make([]document.Option, end-start)
		for i, row := range rows[start:end] {
			row.Label = markerFor(i)
			chunk[i] = row
		}
		blocks = append(blocks, document.CircleOption{Options: chunk})
	}
	return blocks
}

// sectionLabel emits a bold section heading in body flow.
func sectionLabel(text string) document.Block {
	return document.Text{
		Text:      text,
		FontSize:  42,
		Bold:      true,
		MarginTop: 10,
	}
}

// bodyText emits default-size body copy.
func bodyText(text string) document.Block {
	return document.Text{Text: text, MarginBottom: 6}
}
