// internal/fax/builder/inquiry.go
package builder

import (
	"strings"

	"faxgen/internal/fax/document"
)

// GeneralInquiry builds a question/answer fax. Inline images sit next to the
// answer body; end-positioned images are appended after it, each preceded by
// its caption. Image fetch failures degrade to fallback text at render time.
func GeneralInquiry(data document.GeneralInquiryData) []document.Block {
	blocks := brandHeader("Answer to Your Question")
	blocks = append(blocks,
		sectionLabel("Your question"),
		bodyText(data.Question),
		document.BlankSpace{Height: 14},
		sectionLabel("Our answer"),
		bodyText(data.Answer),
	)

	var endImages []document.InquiryImage
	for _, img := range data.Images {
		if img.Position == document.ImageEnd {
			endImages = append(endImages, img)
			continue
		}
		blocks = append(blocks, document.Image{
			URL:      img.URL,
			Caption:  img.Caption,
			Fallback: imageFallback(img),
		})
	}

	for _, img := range endImages {
		blocks = append(blocks, document.BlankSpace{Height: 14})
		if img.Caption != "" {
			blocks = append(blocks, document.Text{Text: img.Caption, Bold: true, MarginBottom: 4})
		}
		blocks = append(blocks, document.Image{
			URL:      img.URL,
			Caption:  img.Caption,
			Fallback: imageFallback(img),
		})
	}

	if len(data.RelatedTopics) > 0 {
		blocks = append(blocks,
			document.BlankSpace{Height: 20},
			sectionLabel("Related topics"),
			bodyText("You may also ask about: "+strings.Join(data.RelatedTopics, ", ")+"."),
		)
	}
	return blocks
}

func imageFallback(img document.InquiryImage) string {
	if img.Caption != "" {
		return "[Image unavailable: " + img.Caption + "]"
	}
	return "[Image unavailable]"
}
