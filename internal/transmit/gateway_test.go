// internal/transmit/gateway_test.go
package transmit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "faxgen/internal/common/errors"
)

type fakeSES struct {
	input *ses.SendRawEmailInput
	err   error
}

func (f *fakeSES) SendRawEmail(_ context.Context, input *ses.SendRawEmailInput) (*ses.SendRawEmailOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendRawEmailOutput{}, nil
}

func sampleJob() Job {
	return Job{
		To:  "819012345678",
		PDF: []byte("%PDF-1.4 fake document body"),
		Metadata: Metadata{
			ReferenceID: "FX-2026-000123",
			FaxType:     "welcome",
			Pages:       2,
		},
	}
}

func TestTransmitBuildsGatewayAddress(t *testing.T) {
	sender := &fakeSES{}
	g := NewSESGateway(sender, "fax@faxi.jp", "fax-gateway.example.com", zap.NewNop())

	require.NoError(t, g.Transmit(context.Background(), sampleJob()))
	require.NotNil(t, sender.input)

	require.Len(t, sender.input.Destinations, 1)
	assert.Equal(t, "819012345678@fax-gateway.example.com", sender.input.Destinations[0])
	assert.Equal(t, "fax@faxi.jp", *sender.input.Source)
}

func TestTransmitMIMEStructure(t *testing.T) {
	sender := &fakeSES{}
	g := NewSESGateway(sender, "fax@faxi.jp", "gw.example.com", zap.NewNop())

	require.NoError(t, g.Transmit(context.Background(), sampleJob()))

	raw := string(sender.input.RawMessage.Data)
	assert.Contains(t, raw, "From: fax@faxi.jp\r\n")
	assert.Contains(t, raw, "To: 819012345678@gw.example.com\r\n")
	assert.Contains(t, raw, "Subject: Fax FX-2026-000123\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0")
	assert.Contains(t, raw, "multipart/mixed")
	assert.Contains(t, raw, "Content-Type: application/pdf")
	assert.Contains(t, raw, "Content-Transfer-Encoding: base64")
	assert.Contains(t, raw, `filename="FX-2026-000123.pdf"`)
	assert.Contains(t, raw, "2 pages attached")

	// base64 body lines wrapped at RFC 2045 width
	for _, line := range strings.Split(raw, "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
}

func TestTransmitRejectsNonPDF(t *testing.T) {
	sender := &fakeSES{}
	g := NewSESGateway(sender, "fax@faxi.jp", "gw.example.com", zap.NewNop())

	job := sampleJob()
	job.PDF = []byte("not a pdf")

	err := g.Transmit(context.Background(), job)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, sender.input, "nothing sent for invalid buffers")
}

func TestTransmitRequiresRecipient(t *testing.T) {
	g := NewSESGateway(&fakeSES{}, "fax@faxi.jp", "gw.example.com", zap.NewNop())

	job := sampleJob()
	job.To = ""
	err := g.Transmit(context.Background(), job)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTransmitWrapsSendFailure(t *testing.T) {
	sender := &fakeSES{err: errors.New("throttled")}
	g := NewSESGateway(sender, "fax@faxi.jp", "gw.example.com", zap.NewNop())

	err := g.Transmit(context.Background(), sampleJob())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeTransmissionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func TestNotifyPublishesStatusEvent(t *testing.T) {
	pub := &fakeSNS{}
	n := NewStatusNotifier(pub, "arn:aws:sns:ap-northeast-1:123:fax-status", zap.NewNop())

	n.Notify(context.Background(), sampleJob(), "sent", nil)
	require.NotNil(t, pub.input)
	assert.Equal(t, "arn:aws:sns:ap-northeast-1:123:fax-status", *pub.input.TopicArn)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*pub.input.Message), &event))
	assert.Equal(t, "FX-2026-000123", event["referenceId"])
	assert.Equal(t, "sent", event["status"])
	assert.NotEmpty(t, event["eventId"])
	assert.Equal(t, "819012345678", event["to"])
	assert.NotContains(t, event, "error")
}

func TestNotifyIncludesFailureReason(t *testing.T) {
	pub := &fakeSNS{}
	n := NewStatusNotifier(pub, "arn:topic", zap.NewNop())

	n.Notify(context.Background(), sampleJob(), "failed", errors.New("line busy"))

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*pub.input.Message), &event))
	assert.Equal(t, "failed", event["status"])
	assert.Equal(t, "line busy", event["error"])
}

func TestNotifySwallowsPublishFailure(t *testing.T) {
	pub := &fakeSNS{err: errors.New("topic gone")}
	n := NewStatusNotifier(pub, "arn:topic", zap.NewNop())

	// must not panic or propagate
	n.Notify(context.Background(), sampleJob(), "sent", nil)
}
