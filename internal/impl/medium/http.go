package medium

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "http",
			Args: docs.ArgSpecs{
				{Dest: "http_url", Type: docs.FieldString, Description: "destination URL for batch POST requests", Required: true},
				{Dest: "http_max_elapsed_seconds", Type: docs.FieldInt, Description: "give up retrying a batch after this many seconds", Default: 30},
			},
		},
		AutoSelectFlag: "http_url",
		Constructor:    newHTTP,
	}))
}

type httpMedium struct {
	url        string
	client     *http.Client
	maxElapsed time.Duration
}

func newHTTP(attrs map[string]any) (medium.Type, error) {
	url, _ := attrs["url"].(string)
	maxElapsed, _ := attrs["max_elapsed_seconds"].(int)
	if maxElapsed == 0 {
		maxElapsed = 30
	}
	return &httpMedium{
		url:        url,
		client:     &http.Client{Timeout: 10 * time.Second},
		maxElapsed: time.Duration(maxElapsed) * time.Second,
	}, nil
}

// Write POSTs the batch payload, retrying transient failures with
// exponential backoff. POST is treated as idempotent at this layer: the
// scheduler's count-guard already dedups successful writes against number,
// so a retried-but-actually-delivered batch only risks a duplicate at the
// sink, not a miscount.
func (m *httpMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxElapsedTime(backoff.NewExponentialBackOff(), m.maxElapsed), ctx)
	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(b.Payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := m.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("http medium: server error: %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("http medium: client error: %d", resp.StatusCode))
		}
		return nil
	}, bo)
	if err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *httpMedium) Close(ctx context.Context) error {
	m.client.CloseIdleConnections()
	return nil
}
