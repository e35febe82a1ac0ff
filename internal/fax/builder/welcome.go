// internal/fax/builder/welcome.go
package builder

import (
	"fmt"

	"faxgen/internal/fax/document"
)

// Welcome builds the onboarding fax sent when a user's account is activated.
// It must carry the literal dedicated email address plus sending and
// receiving instructions with at least one example, since the fax is the
// user's only manual.
func Welcome(data document.WelcomeFaxData) []document.Block {
	greeting := "Welcome to Faxi!"
	if data.UserName != "" {
		greeting = fmt.Sprintf("Welcome to Faxi, %s!", data.UserName)
	}

	blocks := brandHeader("Welcome to Your Fax-Email Service")
	blocks = append(blocks,
		document.Text{Text: greeting, FontSize: 48, Bold: true, Alignment: document.AlignCenter, MarginBottom: 10},
		bodyText("Your fax machine is now connected to the internet. You can send and receive email, shop online, and book appointments, all by fax."),
		document.BlankSpace{Height: 20},

		sectionLabel("Your dedicated email address"),
		document.Text{Text: data.EmailAddress, FontSize: 48, Bold: true, Alignment: document.AlignCenter, MarginTop: 6, MarginBottom: 6},
		bodyText("Anyone can write to this address and their message will arrive on your fax machine."),
		document.BlankSpace{Height: 20},

		sectionLabel("How to send"),
		bodyText("1. Write your message on a sheet of paper."),
		bodyText("2. On the first line, write the recipient's email address."),
		bodyText("3. On the second line, write the subject."),
		bodyText("4. Fax the sheet to "+SupportLine+"."),
		document.BlankSpace{Height: 14},

		sectionLabel("Example format"),
		document.Text{
			Text:      "To: tanaka@example.com\nSubject: Hello from " + data.PhoneNumber + "\n\nDear Tanaka-san, thank you for the tea. I will visit next week.",
			FontSize:  36,
			MarginTop: 6,
		},
		document.BlankSpace{Height: 14},

		sectionLabel("How to receive"),
		bodyText("Incoming email is converted to large print and delivered to your fax machine automatically. Each document carries a reference number at the bottom of every page."),
		bodyText("Keep the reference number at hand when you call support about a document."),
		document.BlankSpace{Height: 14},

		bodyText("Questions? Call us toll-free at "+SupportLine+". We are happy to help."),
	)
	return blocks
}
