// internal/fax/builder/appointments.go
package builder

import (
	"fmt"

	"faxgen/internal/fax/document"
)

// AppointmentSelection builds a booking choice form. Unavailable slots are
// dropped before marker assignment so every printed marker is bookable.
func AppointmentSelection(data document.AppointmentSelectionData) []document.Block {
	blocks := brandHeader("Appointment Times")

	intro := fmt.Sprintf("Available times for %s with %s.", data.ServiceName, data.Provider)
	blocks = append(blocks, bodyText(intro))
	if data.Location != "" {
		blocks = append(blocks, bodyText("Location: "+data.Location))
	}
	blocks = append(blocks,
		bodyText("Circle ONE time below and fax this page back to confirm your booking."),
		document.BlankSpace{Height: 14},
	)

	rows := make([]document.Option, 0, len(data.Slots))
	for _, s := range data.Slots {
		if !s.Available {
			continue
		}
		rows = append(rows, document.Option{Text: slotRowText(s)})
	}

	if len(rows) == 0 {
		blocks = append(blocks,
			bodyText("No times are currently available. We will fax you as soon as a slot opens."),
		)
		return blocks
	}

	blocks = append(blocks, chunkOptions(rows)...)
	blocks = append(blocks,
		document.BlankSpace{Height: 14},
		bodyText("If none of these times suit you, write a preferred date on this page and fax it back."),
	)
	return blocks
}

func slotRowText(s document.AppointmentSlot) string {
	text := fmt.Sprintf("%s, %s - %s", s.Date, s.StartTime, s.EndTime)
	if s.Duration > 0 {
		text += fmt.Sprintf(" (%d min)", s.Duration)
	}
	return text
}
