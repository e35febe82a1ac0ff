// internal/fax/engine.go

// Package fax is the generation engine: it validates a request, allocates a
// traceable reference ID, builds and paginates the content, and renders the
// PDF. Each call is independent; concurrent generations share only the
// reference ID counter and the reservation store.
package fax

import (
	"context"
	"time"

	"faxgen/internal/audit"
	apperrors "faxgen/internal/common/errors"
	"faxgen/internal/common/metrics"
	"faxgen/internal/fax/builder"
	"faxgen/internal/fax/document"
	"faxgen/internal/fax/paginate"
	"faxgen/internal/fax/refid"
	"faxgen/internal/fax/render"

	"go.uber.org/zap"
)

// Reserver claims a reference ID in a shared uniqueness store.
type Reserver interface {
	Reserve(ctx context.Context, referenceID string) (bool, error)
}

// Request selects one fax type and carries its payload. Exactly one payload
// pointer must be set, matching Type. ReferenceID is optional; the engine
// allocates one when it is empty.
type Request struct {
	Type        document.TemplateType
	ReferenceID string
	UserID      string
	MessageID   string

	Welcome      *document.WelcomeFaxData
	EmailReply   *document.EmailReplyData
	Inquiry      *document.GeneralInquiryData
	Products     *document.ProductSelectionData
	Appointments *document.AppointmentSelectionData
	Complaint    *document.ComplaintDetails
}

// Result is one successfully generated fax document.
type Result struct {
	Template document.Template
	PDF      []byte
}

// Engine orchestrates builders, planner and renderer. Recorder and reserver
// are optional; a nil recorder skips the audit trail and a nil reserver
// falls back to best-effort in-process ID uniqueness.
type Engine struct {
	renderer    *render.Renderer
	recorder    audit.Recorder
	reserver    Reserver
	logger      *zap.Logger
	maxAttempts int
}

func NewEngine(renderer *render.Renderer, recorder audit.Recorder, reserver Reserver, logger *zap.Logger, maxAttempts int) *Engine {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &Engine{
		renderer:    renderer,
		recorder:    recorder,
		reserver:    reserver,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Generate runs the full pipeline for one request.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	blocks, err := e.buildBlocks(req)
	if err != nil {
		e.recordFailure(req.Type, err)
		return nil, err
	}

	refID, err := e.allocateReferenceID(ctx, req.ReferenceID)
	if err != nil {
		e.recordFailure(req.Type, err)
		return nil, err
	}

	pages, err := paginate.Paginate(blocks, refID)
	if err != nil {
		e.recordFailure(req.Type, err)
		return nil, err
	}

	tmpl := document.Template{
		Type:        req.Type,
		ReferenceID: refID,
		Pages:       pages,
		Context: map[string]interface{}{
			"userId":    req.UserID,
			"messageId": req.MessageID,
		},
	}

	pdf, err := e.renderer.Render(ctx, tmpl)
	if err != nil {
		e.recordFailure(req.Type, err)
		return nil, err
	}

	metrics.FaxDocumentsGenerated.WithLabelValues(string(req.Type)).Inc()
	metrics.FaxRenderDuration.WithLabelValues(string(req.Type)).Observe(time.Since(start).Seconds())
	metrics.FaxPagesPerDocument.WithLabelValues(string(req.Type)).Observe(float64(len(pages)))

	e.writeAudit(tmpl, len(pdf), req)

	e.logger.Info("fax document generated",
		zap.String("referenceId", refID),
		zap.String("faxType", string(req.Type)),
		zap.Int("pages", len(pages)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))

	return &Result{Template: tmpl, PDF: pdf}, nil
}

// buildBlocks validates the payload matching req.Type and dispatches to its
// builder. The switch is exhaustive over supported template types.
func (e *Engine) buildBlocks(req Request) ([]document.Block, error) {
	switch req.Type {
	case document.TypeWelcome:
		if req.Welcome == nil {
			return nil, apperrors.NewValidationFailedError("welcome", "payload missing for welcome fax")
		}
		if err := req.Welcome.Validate(); err != nil {
			return nil, err
		}
		return builder.Welcome(*req.Welcome), nil

	case document.TypeEmailReply:
		if req.EmailReply == nil {
			return nil, apperrors.NewValidationFailedError("emailReply", "payload missing for email reply fax")
		}
		if err := req.EmailReply.Validate(); err != nil {
			return nil, err
		}
		return builder.EmailReply(*req.EmailReply), nil

	case document.TypeGeneralInquiry:
		if req.Inquiry == nil {
			return nil, apperrors.NewValidationFailedError("inquiry", "payload missing for general inquiry fax")
		}
		if err := req.Inquiry.Validate(); err != nil {
			return nil, err
		}
		return builder.GeneralInquiry(*req.Inquiry), nil

	case document.TypeProductSelection:
		if req.Products == nil {
			return nil, apperrors.NewValidationFailedError("products", "payload missing for product selection fax")
		}
		if err := req.Products.Validate(); err != nil {
			return nil, err
		}
		return builder.ProductSelection(*req.Products), nil

	case document.TypeAppointmentSelection:
		if req.Appointments == nil {
			return nil, apperrors.NewValidationFailedError("appointments", "payload missing for appointment selection fax")
		}
		if err := req.Appointments.Validate(); err != nil {
			return nil, err
		}
		return builder.AppointmentSelection(*req.Appointments), nil

	case document.TypeComplaint:
		if req.Complaint == nil {
			return nil, apperrors.NewValidationFailedError("complaint", "payload missing for complaint fax")
		}
		if err := req.Complaint.Validate(); err != nil {
			return nil, err
		}
		return builder.Complaint(*req.Complaint), nil
	}
	return nil, apperrors.NewUnknownFaxTypeError(string(req.Type))
}

// allocateReferenceID returns the caller-supplied ID unchanged, or generates
// one and reserves it against the uniqueness store, regenerating on
// conflict up to maxAttempts times.
func (e *Engine) allocateReferenceID(ctx context.Context, supplied string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}

	var lastID string
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		lastID = refid.Generate()
		if e.reserver == nil {
			return lastID, nil
		}

		ok, err := e.reserver.Reserve(ctx, lastID)
		if err != nil {
			// the store being down must not stop outbound faxes; fall back
			// to best-effort uniqueness
			e.logger.Warn("reference ID reservation unavailable",
				zap.String("referenceId", lastID), zap.Error(err))
			return lastID, nil
		}
		if ok {
			return lastID, nil
		}
		e.logger.Warn("reference ID conflict, regenerating",
			zap.String("referenceId", lastID), zap.Int("attempt", attempt+1))
	}
	return "", apperrors.NewReferenceConflictError(lastID)
}

// writeAudit records the generated document. Failures are logged and
// counted only; the fax was already produced.
func (e *Engine) writeAudit(tmpl document.Template, size int, req Request) {
	if e.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := audit.Entry{
		ReferenceID: tmpl.ReferenceID,
		FaxType:     string(tmpl.Type),
		Pages:       len(tmpl.Pages),
		Bytes:       size,
		UserID:      req.UserID,
		MessageID:   req.MessageID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.recorder.Record(ctx, entry); err != nil {
		e.logger.Warn("audit write failed",
			zap.String("referenceId", tmpl.ReferenceID), zap.Error(err))
	}
}

func (e *Engine) recordFailure(faxType document.TemplateType, err error) {
	code := "UNKNOWN"
	if stdErr, ok := err.(*apperrors.StandardError); ok {
		code = string(stdErr.Code)
	}
	metrics.FaxGenerationFailures.WithLabelValues(string(faxType), code).Inc()
}
