// internal/transmit/notify.go
package transmit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snsPublisher is the slice of the SNS client the notifier needs.
type snsPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// StatusNotifier publishes delivery status events for downstream consumers
// (order tracking, insights). Publishing is fire-and-forget: a failed
// publish is logged, never propagated.
type StatusNotifier struct {
	publisher snsPublisher
	topicARN  string
	logger    *zap.Logger
}

func NewStatusNotifier(publisher snsPublisher, topicARN string, logger *zap.Logger) *StatusNotifier {
	return &StatusNotifier{publisher: publisher, topicARN: topicARN, logger: logger}
}

// statusEvent is the published payload shape. EventID makes redelivered
// notifications deduplicable on the consumer side.
type statusEvent struct {
	EventID     string    `json:"eventId"`
	ReferenceID string    `json:"referenceId"`
	To          string    `json:"to"`
	FaxType     string    `json:"faxType"`
	Status      string    `json:"status"` // "sent" or "failed"
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notify publishes the outcome of one transmission attempt.
func (n *StatusNotifier) Notify(ctx context.Context, job Job, status string, deliveryErr error) {
	event := statusEvent{
		EventID:     uuid.NewString(),
		ReferenceID: job.Metadata.ReferenceID,
		To:          job.To,
		FaxType:     job.Metadata.FaxType,
		Status:      status,
		Timestamp:   time.Now().UTC(),
	}
	if deliveryErr != nil {
		event.Error = deliveryErr.Error()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("status event marshal failed", zap.Error(err))
		return
	}

	_, err = n.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		n.logger.Warn("status publish failed",
			zap.String("referenceId", job.Metadata.ReferenceID),
			zap.Error(err))
	}
}
