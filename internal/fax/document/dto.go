// internal/fax/document/dto.go
package document

import (
	"fmt"
	"strings"
	"time"

	apperrors "faxgen/internal/common/errors"
)

// Domain DTOs consumed by the template builders. They arrive as JSON from
// upstream workflow variables; validation happens here, before any block is
// built, so a malformed payload never aborts a render midway.

// ImagePosition places an inquiry image relative to the answer text.
type ImagePosition string

const (
	ImageInline ImagePosition = "inline"
	ImageEnd    ImagePosition = "end"
)

// EmailReplyData is the payload for an email forwarded back to a fax user.
type EmailReplyData struct {
	From            string `json:"from"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	HasQuickReplies bool   `json:"hasQuickReplies"`
}

func (d *EmailReplyData) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.From) == "" {
		return apperrors.NewValidationFailedError("from", "sender address is required")
	}
	if strings.TrimSpace(d.Body) == "" {
		return apperrors.NewValidationFailedError("body", "email body is required")
	}
	return nil
}

// InquiryImage is one illustration attached to a general inquiry answer.
type InquiryImage struct {
	URL      string        `json:"url"`
	Caption  string        `json:"caption"`
	Position ImagePosition `json:"position"`
}

// GeneralInquiryData is a question/answer pair with optional illustrations.
type GeneralInquiryData struct {
	Question      string         `json:"question"`
	Answer        string         `json:"answer"`
	Images        []InquiryImage `json:"images,omitempty"`
	RelatedTopics []string       `json:"relatedTopics,omitempty"`
}

func (d *GeneralInquiryData) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.Question) == "" {
		return apperrors.NewValidationFailedError("question", "question is required")
	}
	if strings.TrimSpace(d.Answer) == "" {
		return apperrors.NewValidationFailedError("answer", "answer is required")
	}
	for i, img := range d.Images {
		if img.URL == "" {
			return apperrors.NewValidationFailedError(
				fmt.Sprintf("images[%d].url", i), "image url is required")
		}
		if img.Position != ImageInline && img.Position != ImageEnd {
			return apperrors.NewValidationFailedError(
				fmt.Sprintf("images[%d].position", i),
				fmt.Sprintf("position must be inline or end, got %q", img.Position))
		}
	}
	return nil
}

// CuratedProduct is one shopping result curated for fax presentation.
type CuratedProduct struct {
	ASIN             string  `json:"asin"`
	Title            string  `json:"title"`
	PriceYen         int     `json:"price"`
	PrimeEligible    bool    `json:"primeEligible"`
	Rating           float64 `json:"rating"`
	DeliveryEstimate string  `json:"deliveryEstimate"`
	SelectionMarker  string  `json:"selectionMarker"`
	ImageURL         string  `json:"imageUrl,omitempty"`
	Reasoning        string  `json:"reasoning"`
	Seller           string  `json:"seller,omitempty"`
}

// ProductSelectionData is the payload for a product choice form.
type ProductSelectionData struct {
	SearchQuery string           `json:"searchQuery"`
	Products    []CuratedProduct `json:"products"`
	UserName    string           `json:"userName,omitempty"`
}

func (d *ProductSelectionData) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.SearchQuery) == "" {
		return apperrors.NewValidationFailedError("searchQuery", "search query is required")
	}
	if len(d.Products) == 0 {
		return apperrors.NewValidationFailedError("products", "at least one product is required")
	}
	for i, p := range d.Products {
		if strings.TrimSpace(p.Title) == "" {
			return apperrors.NewValidationFailedError(
				fmt.Sprintf("products[%d].title", i), "product title is required")
		}
		if p.PriceYen < 0 {
			return apperrors.NewValidationFailedError(
				fmt.Sprintf("products[%d].price", i), "price must not be negative")
		}
	}
	return nil
}

// AppointmentSlot is one bookable time window.
type AppointmentSlot struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Duration        int    `json:"duration"`
	Available       bool   `json:"available"`
	SelectionMarker string `json:"selectionMarker"`
}

// AppointmentSelectionData is the payload for an appointment choice form.
type AppointmentSelectionData struct {
	ServiceName string            `json:"serviceName"`
	Provider    string            `json:"provider"`
	Location    string            `json:"location,omitempty"`
	Slots       []AppointmentSlot `json:"slots"`
}

func (d *AppointmentSelectionData) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.ServiceName) == "" {
		return apperrors.NewValidationFailedError("serviceName", "service name is required")
	}
	if len(d.Slots) == 0 {
		return apperrors.NewValidationFailedError("slots", "at least one slot is required")
	}
	for i, s := range d.Slots {
		if s.Date == "" || s.StartTime == "" {
			return apperrors.NewValidationFailedError(
				fmt.Sprintf("slots[%d]", i), "slot date and start time are required")
		}
	}
	return nil
}

// WelcomeFaxData is the payload for the onboarding fax sent to new users.
type WelcomeFaxData struct {
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
	UserName     string `json:"userName,omitempty"`
}

func (d *WelcomeFaxData) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.PhoneNumber) == "" {
		return apperrors.NewValidationFailedError("phoneNumber", "phone number is required")
	}
	if !strings.Contains(d.EmailAddress, "@") {
		return apperrors.NewValidationFailedError("emailAddress", "email address is malformed")
	}
	return nil
}

// ComplaintDetails is the payload for a complaint notification fax.
type ComplaintDetails struct {
	MessageID             string    `json:"messageId"`
	ComplainedRecipients  []string  `json:"complainedRecipients"`
	ComplaintFeedbackType string    `json:"complaintFeedbackType,omitempty"`
	Timestamp             time.Time `json:"timestamp"`
}

func (d *ComplaintDetails) Validate() *apperrors.StandardError {
	if strings.TrimSpace(d.MessageID) == "" {
		return apperrors.NewValidationFailedError("messageId", "message id is required")
	}
	if len(d.ComplainedRecipients) == 0 {
		return apperrors.NewValidationFailedError("complainedRecipients", "at least one recipient is required")
	}
	return nil
}
