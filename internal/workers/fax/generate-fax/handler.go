// internal/workers/fax/generate-fax/handler.go
package generatefax

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/logger"
	"faxgen/internal/common/observability"
	"faxgen/internal/fax"
	"faxgen/internal/fax/document"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "generate-fax"

type Handler struct {
	config       *Config
	logger       logger.Logger
	engine       *fax.Engine
	errorHandler *apperrors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, engine *fax.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       scoped,
		engine:       engine,
		errorHandler: apperrors.NewErrorHandler(scoped),
		obs:          obs,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	start := time.Now()
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
		h.obs.RecordFaxProcessed(ctx, input.FaxType, "failed")
		h.obs.RecordJobDuration(ctx, time.Since(start), "failed")
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return nil
	}

	h.obs.RecordFaxProcessed(ctx, input.FaxType, "success")
	h.obs.RecordJobDuration(ctx, time.Since(start), "success")
	h.completeJob(ctx, client, job, output)
	return nil
}

// Execute runs the generation pipeline for one validated job payload.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	req, err := decodeRequest(input)
	if err != nil {
		return nil, err
	}

	result, err := h.engine.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Output{
		ReferenceID: result.Template.ReferenceID,
		PageCount:   len(result.Template.Pages),
		PDFBase64:   base64.StdEncoding.EncodeToString(result.PDF),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		To:          input.To,
	}, nil
}

// validateInput checks the payload envelope against the JSON schema before
// the type-specific DTO is decoded.
func validateInput(input *Input) error {
	doc := map[string]interface{}{
		"faxType": input.FaxType,
		"data":    input.Data,
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(inputSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return apperrors.NewValidationFailedError("", fmt.Sprintf("schema validation: %v", err))
	}
	if !result.Valid() {
		details := ""
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return apperrors.NewValidationFailedError("", details)
	}
	return nil
}

// decodeRequest maps the generic data object onto the DTO matching the fax
// type via a JSON round trip, then slots it into an engine request.
func decodeRequest(input *Input) (fax.Request, error) {
	req := fax.Request{
		Type:        document.TemplateType(input.FaxType),
		ReferenceID: input.ReferenceID,
		UserID:      input.UserID,
		MessageID:   input.MessageID,
	}

	raw, err := json.Marshal(input.Data)
	if err != nil {
		return req, apperrors.NewValidationFailedError("data", fmt.Sprintf("encode data: %v", err))
	}

	var target interface{}
	switch req.Type {
	case document.TypeWelcome:
		req.Welcome = &document.WelcomeFaxData{}
		target = req.Welcome
	case document.TypeEmailReply:
		req.EmailReply = &document.EmailReplyData{}
		target = req.EmailReply
	case document.TypeGeneralInquiry:
		req.Inquiry = &document.GeneralInquiryData{}
		target = req.Inquiry
	case document.TypeProductSelection:
		req.Products = &document.ProductSelectionData{}
		target = req.Products
	case document.TypeAppointmentSelection:
		req.Appointments = &document.AppointmentSelectionData{}
		target = req.Appointments
	case document.TypeComplaint:
		req.Complaint = &document.ComplaintDetails{}
		target = req.Complaint
	default:
		return req, apperrors.NewUnknownFaxTypeError(input.FaxType)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return req, apperrors.NewValidationFailedError("data", fmt.Sprintf("decode %s data: %v", input.FaxType, err))
	}
	return req, nil
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
