// internal/workers/fax/generate-fax/handler_test.go
package generatefax

import (
	"context"
	"encoding/base64"
	"testing"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/logger"
	"faxgen/internal/common/observability"
	"faxgen/internal/fax"
	"faxgen/internal/fax/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	engine := fax.NewEngine(render.New(nil, zap.NewNop()), nil, nil, zap.NewNop(), 3)
	return NewHandler(LoadConfig(), engine, &observability.Observability{}, logger.NewTestLogger(t))
}

func TestExecuteWelcome(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		FaxType: "welcome",
		Data: map[string]interface{}{
			"phoneNumber":  "819012345678",
			"emailAddress": "819012345678@me.faxi.jp",
			"userName":     "Tanaka",
		},
		UserID: "user-1",
		To:     "819012345678",
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Regexp(t, `^FX-\d{4}-\d{6}$`, output.ReferenceID)
	assert.GreaterOrEqual(t, output.PageCount, 1)
	assert.Equal(t, "819012345678", output.To)
	assert.NotEmpty(t, output.GeneratedAt)

	pdf, err := base64.StdEncoding.DecodeString(output.PDFBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf[:4])
}

func TestExecuteKeepsSuppliedReferenceID(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		FaxType:     "welcome",
		ReferenceID: "FX-2026-000777",
		Data: map[string]interface{}{
			"phoneNumber":  "819012345678",
			"emailAddress": "819012345678@me.faxi.jp",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "FX-2026-000777", output.ReferenceID)
}

func TestExecuteRejectsUnknownFaxType(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		FaxType: "postcard",
		Data:    map[string]interface{}{},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err), "schema rejects the enum before dispatch")
}

func TestExecuteRejectsMissingData(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FaxType: "welcome"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExecuteRejectsInvalidPayload(t *testing.T) {
	h := newTestHandler(t)

	// passes the envelope schema, fails DTO validation
	_, err := h.Execute(context.Background(), &Input{
		FaxType: "email-reply",
		Data: map[string]interface{}{
			"from": "a@example.com",
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExecuteProductSelection(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		FaxType: "product-selection",
		Data: map[string]interface{}{
			"searchQuery": "electric kettle",
			"products": []interface{}{
				map[string]interface{}{
					"asin":             "B000000001",
					"title":            "Tiger PCM-A081 Electric Kettle 0.8L",
					"price":            6980,
					"primeEligible":    true,
					"rating":           4.4,
					"deliveryEstimate": "tomorrow",
				},
			},
		},
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, output.PageCount, 1)
}

func TestDecodeRequestAllTypes(t *testing.T) {
	tests := []struct {
		faxType string
		data    map[string]interface{}
	}{
		{"welcome", map[string]interface{}{"phoneNumber": "1", "emailAddress": "a@b"}},
		{"email-reply", map[string]interface{}{"from": "a@b", "body": "hi"}},
		{"general-inquiry", map[string]interface{}{"question": "q", "answer": "a"}},
		{"product-selection", map[string]interface{}{"searchQuery": "x", "products": []interface{}{}}},
		{"appointment-selection", map[string]interface{}{"serviceName": "s", "provider": "p", "slots": []interface{}{}}},
		{"complaint-notification", map[string]interface{}{"messageId": "m", "complainedRecipients": []interface{}{"r"}, "timestamp": "2026-08-20T09:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.faxType, func(t *testing.T) {
			req, err := decodeRequest(&Input{FaxType: tt.faxType, Data: tt.data})
			require.NoError(t, err)
			assert.Equal(t, tt.faxType, string(req.Type))
		})
	}
}
