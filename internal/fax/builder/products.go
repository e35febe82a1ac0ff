// internal/fax/builder/products.go
package builder

import (
	"fmt"
	"strings"

	"faxgen/internal/fax/document"
)

// ProductSelection builds a shopping choice form. Each product becomes one
// circle-option row with a truncated title and a yen price suffix; rows are
// chunked so no option block carries more than five markers.
func ProductSelection(data document.ProductSelectionData) []document.Block {
	blocks := brandHeader("Shopping Results")

	intro := fmt.Sprintf("Here are our picks for %q.", data.SearchQuery)
	if data.UserName != "" {
		intro = fmt.Sprintf("%s, here are our picks for %q.", data.UserName, data.SearchQuery)
	}
	blocks = append(blocks,
		bodyText(intro),
		bodyText("Circle ONE item below and fax this page back to place your order."),
		document.BlankSpace{Height: 14},
	)

	rows := make([]document.Option, 0, len(data.Products))
	for _, p := range data.Products {
		price := p.PriceYen
		rows = append(rows, document.Option{
			Text:     productRowText(p),
			PriceYen: &price,
		})
	}
	blocks = append(blocks, chunkOptions(rows)...)

	blocks = append(blocks,
		document.BlankSpace{Height: 14},
		bodyText("Prices include tax. Delivery estimates assume a confirmed order by 3 PM today."),
	)
	return blocks
}

func productRowText(p document.CuratedProduct) string {
	parts := []string{truncateTitle(p.Title)}
	if p.Rating > 0 {
		parts = append(parts, fmt.Sprintf("%.1f stars", p.Rating))
	}
	if p.PrimeEligible {
		parts = append(parts, "Prime")
	}
	if p.DeliveryEstimate != "" {
		parts = append(parts, "arrives "+p.DeliveryEstimate)
	}
	return strings.Join(parts, ", ")
}
