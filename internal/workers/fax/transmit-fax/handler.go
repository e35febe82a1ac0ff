// internal/workers/fax/transmit-fax/handler.go
package transmitfax

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/logger"
	"faxgen/internal/transmit"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "transmit-fax"

type Handler struct {
	config       *Config
	logger       logger.Logger
	transmitter  transmit.Transmitter
	notifier     *transmit.StatusNotifier
	errorHandler *apperrors.ErrorHandler
}

// NewHandler wires the delivery gateway and the optional status notifier;
// pass a nil notifier when SNS publishing is disabled.
func NewHandler(config *Config, transmitter transmit.Transmitter, notifier *transmit.StatusNotifier, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       scoped,
		transmitter:  transmitter,
		notifier:     notifier,
		errorHandler: apperrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job,
			apperrors.NewValidationFailedError("", fmt.Sprintf("parse input: %v", err)))
		return nil
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return nil
	}

	h.completeJob(ctx, client, job, output)
	return nil
}

// Execute decodes the PDF and hands it to the delivery gateway, then
// publishes the outcome for downstream consumers.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.To == "" {
		return nil, apperrors.NewValidationFailedError("to", "recipient fax number is required")
	}
	if input.PDFBase64 == "" {
		return nil, apperrors.NewValidationFailedError("pdfBase64", "document payload is required")
	}

	pdf, err := base64.StdEncoding.DecodeString(input.PDFBase64)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("pdfBase64", fmt.Sprintf("decode: %v", err))
	}

	job := transmit.Job{
		To:  input.To,
		PDF: pdf,
		Metadata: transmit.Metadata{
			ReferenceID: input.ReferenceID,
			FaxType:     input.FaxType,
			Pages:       input.PageCount,
			UserID:      input.UserID,
			MessageID:   input.MessageID,
		},
	}

	if err := h.transmitter.Transmit(ctx, job); err != nil {
		h.notify(ctx, job, "failed", err)
		return nil, err
	}
	h.notify(ctx, job, "sent", nil)

	return &Output{
		Status:        "sent",
		ReferenceID:   input.ReferenceID,
		TransmittedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) notify(ctx context.Context, job transmit.Job, status string, err error) {
	if h.notifier == nil {
		return
	}
	h.notifier.Notify(ctx, job, status, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}
