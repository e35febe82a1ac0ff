// internal/workers/fax/generate-fax/models.go
package generatefax

// Input is the job variable payload. Data carries the type-specific DTO and
// is decoded after the fax type is known.
type Input struct {
	FaxType     string                 `json:"faxType"`
	Data        map[string]interface{} `json:"data"`
	ReferenceID string                 `json:"referenceId,omitempty"`
	UserID      string                 `json:"userId,omitempty"`
	MessageID   string                 `json:"messageId,omitempty"`
	To          string                 `json:"to,omitempty"`
}

// Output is written back to the workflow. The PDF travels base64-encoded in
// process variables; the transmit worker decodes it.
type Output struct {
	ReferenceID string `json:"referenceId"`
	PageCount   int    `json:"pageCount"`
	PDFBase64   string `json:"pdfBase64"`
	GeneratedAt string `json:"generatedAt"`
	To          string `json:"to,omitempty"`
}

// inputSchema guards the job payload before any DTO decoding happens.
var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"faxType", "data"},
	"properties": map[string]interface{}{
		"faxType": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{
				"welcome",
				"email-reply",
				"general-inquiry",
				"product-selection",
				"appointment-selection",
				"complaint-notification",
			},
		},
		"data":        map[string]interface{}{"type": "object"},
		"referenceId": map[string]interface{}{"type": "string"},
		"userId":      map[string]interface{}{"type": "string"},
		"messageId":   map[string]interface{}{"type": "string"},
		"to":          map[string]interface{}{"type": "string"},
	},
}
