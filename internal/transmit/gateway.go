// internal/transmit/gateway.go

// Package transmit delivers rendered fax documents. Delivery goes through a
// mail-to-fax gateway: the PDF is attached to a raw MIME message addressed
// to <fax number>@<gateway domain> and handed to SES.
package transmit

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/metrics"
)

var pdfMagic = []byte("%PDF")

// Job is one outbound fax delivery.
type Job struct {
	To       string // recipient fax number, digits only
	PDF      []byte
	Metadata Metadata
}

// Metadata travels with the delivery for gateway-side logging and billing.
type Metadata struct {
	ReferenceID string `json:"referenceId"`
	FaxType     string `json:"faxType"`
	Pages       int    `json:"pages,omitempty"`
	UserID      string `json:"userId,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
}

// Transmitter sends one fax job.
type Transmitter interface {
	Transmit(ctx context.Context, job Job) error
}

// sesSender is the slice of the SES client the gateway needs.
type sesSender interface {
	SendRawEmail(ctx context.Context, input *ses.SendRawEmailInput) (*ses.SendRawEmailOutput, error)
}

// SESGateway transmits faxes through the SES mail-to-fax bridge.
type SESGateway struct {
	sender        sesSender
	fromEmail     string
	gatewayDomain string
	logger        *zap.Logger
}

func NewSESGateway(sender sesSender, fromEmail, gatewayDomain string, logger *zap.Logger) *SESGateway {
	return &SESGateway{
		sender:        sender,
		fromEmail:     fromEmail,
		gatewayDomain: gatewayDomain,
		logger:        logger,
	}
}

// Transmit sends job.PDF to the gateway address for job.To. The buffer is
// checked for the PDF magic marker before anything leaves the process.
func (g *SESGateway) Transmit(ctx context.Context, job Job) error {
	if job.To == "" {
		return apperrors.NewValidationFailedError("to", "recipient fax number is required")
	}
	if !bytes.HasPrefix(job.PDF, pdfMagic) {
		return apperrors.NewValidationFailedError("pdf", "buffer is not a PDF document")
	}

	to := job.To + "@" + g.gatewayDomain
	raw := buildRawMessage(g.fromEmail, to, job)

	_, err := g.sender.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(g.fromEmail),
		Destinations: []string{to},
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		metrics.FaxTransmissions.WithLabelValues("failed").Inc()
		g.logger.Error("fax transmission failed",
			zap.String("referenceId", job.Metadata.ReferenceID),
			zap.String("to", job.To),
			zap.Error(err))
		return apperrors.NewTransmissionFailedError(err)
	}

	metrics.FaxTransmissions.WithLabelValues("sent").Inc()
	g.logger.Info("fax transmitted",
		zap.String("referenceId", job.Metadata.ReferenceID),
		zap.String("to", job.To),
		zap.Int("bytes", len(job.PDF)))
	return nil
}

// buildRawMessage assembles the multipart MIME message the gateway expects:
// a short text part followed by the PDF as a base64 attachment.
func buildRawMessage(from, to string, job Job) []byte {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	text, _ := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	fmt.Fprintf(text, "Fax document %s (%s), %d pages attached as PDF.\r\n",
		job.Metadata.ReferenceID, job.Metadata.FaxType, job.Metadata.Pages)

	filename := job.Metadata.ReferenceID + ".pdf"
	if job.Metadata.ReferenceID == "" {
		filename = "fax.pdf"
	}
	pdfPart, _ := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	writeBase64Wrapped(pdfPart, job.PDF)
	w.Close()

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Fax %s\r\n", job.Metadata.ReferenceID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes()
}

// writeBase64Wrapped encodes data at the RFC 2045 76-column line width.
func writeBase64Wrapped(w io.Writer, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		w.Write([]byte(encoded[:n]))
		w.Write([]byte("\r\n"))
		encoded = encoded[n:]
	}
}
