// internal/fax/builder/emailreply.go
package builder

import (
	"faxgen/internal/fax/document"
)

// EmailReply builds the fax presentation of an inbound email. When the
// upstream interpreter detected answerable questions it sets HasQuickReplies
// and the form gains a circle-option row per canned response.
func EmailReply(data document.EmailReplyData) []document.Block {
	blocks := brandHeader("You Have Received an Email")
	blocks = append(blocks,
		document.Text{Text: "From: " + data.From, FontSize: 42, Bold: true, MarginBottom: 4},
		document.Text{Text: "Subject: " + data.Subject, FontSize: 42, Bold: true, MarginBottom: 10},
		document.BlankSpace{Height: 14},
		bodyText(data.Body),
		document.BlankSpace{Height: 20},
	)

	if data.HasQuickReplies {
		blocks = append(blocks,
			sectionLabel("Quick replies"),
			bodyText("Circle one option below, then fax this page back to reply without writing a message."),
			document.CircleOption{Options: []document.Option{
				{Label: "A", Text: "Yes, that works for me."},
				{Label: "B", Text: "No, thank you."},
				{Label: "C", Text: "Please call me to discuss."},
			}},
		)
	} else {
		blocks = append(blocks,
			bodyText("To reply, write your message on a new sheet with the address above on the first line and fax it to "+SupportLine+"."),
		)
	}
	return blocks
}
