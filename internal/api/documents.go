package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/altinukshini/casesearch/internal/model"
)

// SuggestField is the document field the search box completes against.
const SuggestField = "ajName"

func (c *Client) GetDocument(ctx context.Context, docID string) (*model.Document, error) {
	var doc model.Document
	err := c.Get(ctx, "document/"+url.PathEscape(docID), &doc)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("document %s: %w", docID, ErrDetailNotFound)
		}
		return nil, fmt.Errorf("%w: document %s: %w", ErrDetailFetchFailed, docID, err)
	}
	return &doc, nil
}

// ListLabels fetches the cause-of-action labels. Labels are static, so the
// request goes through the cached client and transient failures are retried.
func (c *Client) ListLabels(ctx context.Context) ([]string, error) {
	var resp model.LabelsResponse
	op := func() error {
		err := c.labels.DoWithContext(ctx, http.MethodGet, c.apiURL("labels"), nil, &resp)
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("labels fetch failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLabelsFetchFailed, err)
	}
	return resp.Labels, nil
}

func (c *Client) Suggest(ctx context.Context, field, q string) ([]string, error) {
	v := url.Values{}
	v.Set("field", field)
	v.Set("q", q)
	var resp model.SuggestResponse
	if err := c.Get(ctx, "suggest?"+v.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSuggestionFetchFailed, q, err)
	}
	return resp.Suggestions, nil
}
