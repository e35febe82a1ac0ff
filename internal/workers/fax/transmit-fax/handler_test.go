// internal/workers/fax/transmit-fax/handler_test.go
package transmitfax

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/logger"
	"faxgen/internal/transmit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransmitter struct {
	jobs []transmit.Job
	err  error
}

func (f *fakeTransmitter) Transmit(_ context.Context, job transmit.Job) error {
	f.jobs = append(f.jobs, job)
	return f.err
}

func validInput() *Input {
	return &Input{
		To:          "819012345678",
		PDFBase64:   base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 body")),
		ReferenceID: "FX-2026-000123",
		FaxType:     "welcome",
		PageCount:   2,
		UserID:      "user-1",
	}
}

func TestExecuteTransmits(t *testing.T) {
	tx := &fakeTransmitter{}
	h := NewHandler(LoadConfig(), tx, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "sent", output.Status)
	assert.Equal(t, "FX-2026-000123", output.ReferenceID)
	assert.NotEmpty(t, output.TransmittedAt)

	require.Len(t, tx.jobs, 1)
	job := tx.jobs[0]
	assert.Equal(t, "819012345678", job.To)
	assert.Equal(t, []byte("%PDF-1.4 body"), job.PDF)
	assert.Equal(t, "FX-2026-000123", job.Metadata.ReferenceID)
	assert.Equal(t, 2, job.Metadata.Pages)
}

func TestExecuteRequiresRecipient(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeTransmitter{}, nil, logger.NewTestLogger(t))

	input := validInput()
	input.To = ""
	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExecuteRequiresDocument(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeTransmitter{}, nil, logger.NewTestLogger(t))

	input := validInput()
	input.PDFBase64 = ""
	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExecuteRejectsBadBase64(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeTransmitter{}, nil, logger.NewTestLogger(t))

	input := validInput()
	input.PDFBase64 = "%%% not base64 %%%"
	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExecutePropagatesDeliveryFailure(t *testing.T) {
	tx := &fakeTransmitter{err: apperrors.NewTransmissionFailedError(errors.New("gateway busy"))}
	h := NewHandler(LoadConfig(), tx, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), validInput())
	require.Error(t, err)

	stdErr, ok := err.(*apperrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeTransmissionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
