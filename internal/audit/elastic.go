// internal/audit/elastic.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	apperrors "faxgen/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
)

// ElasticRecorder indexes audit entries for the insights dashboards. The
// document ID is the reference ID, so re-recording the same fax is an
// idempotent upsert.
type ElasticRecorder struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticRecorder(client *elasticsearch.Client, index string) *ElasticRecorder {
	return &ElasticRecorder{client: client, index: index}
}

func (r *ElasticRecorder) Record(ctx context.Context, entry Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return apperrors.NewAuditWriteFailedError(err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(body),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(entry.ReferenceID),
	)
	if err != nil {
		return apperrors.NewAuditWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewAuditWriteFailedError(fmt.Errorf("index %s: %s", r.index, res.Status()))
	}
	return nil
}
