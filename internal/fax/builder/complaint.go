// internal/fax/builder/complaint.go
package builder

import (
	"fmt"
	"strings"

	"faxgen/internal/fax/document"
)

// Complaint builds the notice sent when a recipient reported one of the
// user's emails as unwanted. The etiquette guidance is deliberately long:
// the fax is the user's only channel, so the whole explanation has to fit on
// paper rather than behind a link.
func Complaint(data document.ComplaintDetails) []document.Block {
	blocks := brandHeader("Important Notice About Your Email")

	recipients := strings.Join(data.ComplainedRecipients, ", ")
	notice := fmt.Sprintf(
		"A message you sent on %s was reported as unwanted by the following recipient(s): %s.",
		data.Timestamp.Format("January 2, 2006"), recipients)
	if data.ComplaintFeedbackType != "" {
		notice += fmt.Sprintf(" The report was categorized as %q.", data.ComplaintFeedbackType)
	}

	blocks = append(blocks,
		sectionLabel("What happened"),
		bodyText(notice),
		bodyText("This does not mean you did anything wrong on purpose. Email services flag messages for many reasons, and recipients sometimes press the report button by mistake. However, repeated reports can cause email providers to block messages from our service, which would affect every Faxi user."),
		document.BlankSpace{Height: 14},

		sectionLabel("What happens next"),
		bodyText("We have paused delivery of new messages from you to the recipient(s) listed above. You can still send email to everyone else as usual. If you believe this report was a mistake, call us at "+SupportLine+" and we will review it together."),
		document.BlankSpace{Height: 14},

		sectionLabel("Email etiquette guide"),
	)

	for _, p := range etiquetteGuidance {
		blocks = append(blocks, bodyText(p))
	}

	blocks = append(blocks,
		document.BlankSpace{Height: 14},
		bodyText("Thank you for reading this notice. Following these customs keeps email pleasant for you and your correspondents, and keeps the Faxi service trusted by email providers. If anything here is unclear, call us at "+SupportLine+" and we will gladly explain."),
	)
	return blocks
}

// etiquetteGuidance is printed in full on every complaint notice. Keep each
// entry a self-contained paragraph; the planner will flow them across pages.
var etiquetteGuidance = []string{
	"1. Write to people who expect to hear from you. Email works best between people who already know each other. Before writing to someone for the first time, consider whether they will recognize your name. If they will not, open your message by explaining who you are and how you found their address.",
	"2. Always fill in the subject line. The subject is the first thing a recipient sees, and an empty or vague subject makes a message look suspicious. A short, concrete subject such as 'Question about Thursday's meeting' tells the reader what to expect before they open the message.",
	"3. Keep each message about one topic. If you have three different matters to discuss, three short messages are easier for the recipient to answer than one long one. It also makes it easier for both of you to find the conversation again later.",
	"4. Do not send the same message to many people at once. A message copied to a long list of addresses is the classic shape of unwanted mail, and email providers treat it with suspicion. If you must reach several people, write to each person individually and mention why you are writing to them in particular.",
	"5. Wait for a reply before writing again. If someone has not answered, they may be busy, traveling, or thinking about their response. Sending the same question again within a day or two can feel like pressure. A polite follow-up after a week is usually welcome; three reminders in one afternoon are not.",
	"6. Mind the hour implied by your message. Email can be read at any time, but a message that demands an immediate answer late at night puts the recipient in an awkward spot. If a matter is truly urgent, the telephone is the better tool.",
	"7. Begin with a greeting and end with your name. 'Dear Sato-san' at the top and your own name at the bottom take only a moment to write, and they make the difference between a letter and a demand. This matters even more when writing to someone for the first time.",
	"8. Be careful with requests for money or personal details. Never ask a correspondent for bank details, passwords, or payment by email, and be suspicious of anyone who asks you. Messages about money are the most commonly reported kind of email, even between acquaintances.",
	"9. Respect a request to stop writing. If someone tells you they no longer wish to receive your messages, honor it immediately and completely. Continuing to write after such a request is the most serious form of unwanted mail and will lead to reports.",
	"10. Reread before you send. Once a fax sheet leaves your machine the message cannot be recalled. Check that the address on the first line is exactly right; a single wrong character delivers your words to a stranger.",
	"11. Remember that tone does not travel well in writing. A joke that would land warmly in person can read as curt or strange on paper. When in doubt, say it more gently than you would aloud, and avoid sarcasm with people who do not know you well.",
	"12. When a misunderstanding happens, apologize early. A short message saying 'I am sorry, I did not mean it that way' resolves most email friction. Pride costs correspondents; humility keeps them.",
}
