// internal/workers/fax/transmit-fax/models.go
package transmitfax

// Input is the job variable payload, typically the generate-fax output
// merged with routing fields by the workflow.
type Input struct {
	To          string `json:"to"`
	PDFBase64   string `json:"pdfBase64"`
	ReferenceID string `json:"referenceId"`
	FaxType     string `json:"faxType,omitempty"`
	PageCount   int    `json:"pageCount,omitempty"`
	UserID      string `json:"userId,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
}

// Output is written back to the workflow on successful delivery.
type Output struct {
	Status        string `json:"status"`
	ReferenceID   string `json:"referenceId"`
	TransmittedAt string `json:"transmittedAt"`
}
