// Package query owns the lifecycle of server-side query resources: creating
// them from user input, updating their filters and keeping a local snapshot
// of their metadata.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/metrics"
	"github.com/altinukshini/casesearch/internal/model"
)

// API is the subset of the search API client the service needs.
type API interface {
	CreateQuery(ctx context.Context, q model.UserQuery) (*model.QueryHandle, error)
	UpdateQuery(ctx context.Context, queryID string, q model.UserQuery) (*model.QueryHandle, error)
	GetQueryMeta(ctx context.Context, queryID string) (*model.QueryMeta, error)
}

// Service creates and updates query resources. Snapshots are only touched
// from the UI goroutine after a request returns, so no locking is needed
// as long as callers commit results through Update rather than from a tea.Cmd.
type Service struct {
	api       API
	logger    *zap.Logger
	snapshots map[string]model.QueryMeta
	now       func() time.Time

	// metaBackOff builds the retry policy for FetchMeta.
	metaBackOff func() backoff.BackOff
}

func New(client API, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:       client,
		logger:    logger,
		snapshots: make(map[string]model.QueryMeta),
		now:       time.Now,
		metaBackOff: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
		},
	}
}

// Create submits a new query. The returned handle carries the freshly minted
// id and the total count at creation time.
func (s *Service) Create(ctx context.Context, q model.UserQuery) (*model.QueryHandle, error) {
	q = q.Canonical()
	h, err := s.api.CreateQuery(ctx, q)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.OpCreate, metrics.OutcomeError).Inc()
		s.logger.Warn("query creation failed", zap.String("query", q.Summary()), zap.Error(err))
		if !errors.Is(err, api.ErrCreationFailed) {
			err = fmt.Errorf("%w: %w", api.ErrCreationFailed, err)
		}
		return nil, err
	}
	metrics.RequestsTotal.WithLabelValues(metrics.OpCreate, metrics.OutcomeOK).Inc()
	s.logger.Info("query created",
		zap.String("query_id", h.QueryID),
		zap.Int("total_results", h.TotalResults),
	)
	return h, nil
}

// Commit records the outcome of a Create or Update in the local snapshot.
// It must run on the UI goroutine.
func (s *Service) Commit(h *model.QueryHandle, q model.UserQuery) {
	q = q.Canonical()
	now := model.Timestamp(float64(s.now().UnixNano()) / float64(time.Second))
	snap, ok := s.snapshots[h.QueryID]
	if !ok {
		snap = model.QueryMeta{ID: h.QueryID, CreatedAt: now, Version: 1}
	} else {
		snap.Version++
	}
	snap.Params = q
	snap.TotalResults = h.TotalResults
	snap.LastAccessed = now
	s.snapshots[h.QueryID] = snap
}

// Update replaces the filters of an existing query. It fails with
// api.ErrUpdateFailed (wrapping api.ErrNotFound for unknown ids) and leaves
// the local snapshot untouched on failure.
func (s *Service) Update(ctx context.Context, queryID string, q model.UserQuery) (*model.QueryHandle, error) {
	q = q.Canonical()
	h, err := s.api.UpdateQuery(ctx, queryID, q)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.OpUpdate, metrics.OutcomeError).Inc()
		s.logger.Warn("query update failed", zap.String("query_id", queryID), zap.Error(err))
		if !errors.Is(err, api.ErrUpdateFailed) {
			err = fmt.Errorf("%w: %w", api.ErrUpdateFailed, err)
		}
		return nil, err
	}
	metrics.RequestsTotal.WithLabelValues(metrics.OpUpdate, metrics.OutcomeOK).Inc()
	// The resource is updated in place even if the service answers with a
	// freshly minted id.
	if h.QueryID != queryID {
		s.logger.Debug("update answered with another id",
			zap.String("query_id", queryID),
			zap.String("reply_id", h.QueryID))
		h = &model.QueryHandle{QueryID: queryID, TotalResults: h.TotalResults}
	}
	s.logger.Info("query updated",
		zap.String("query_id", queryID),
		zap.Int("total_results", h.TotalResults),
	)
	return h, nil
}

// FetchMeta reads the server's view of a query. Transport and 5xx failures
// are retried; a missing query is not.
func (s *Service) FetchMeta(ctx context.Context, queryID string) (*model.QueryMeta, error) {
	var meta *model.QueryMeta
	op := func() error {
		m, err := s.api.GetQueryMeta(ctx, queryID)
		if err != nil {
			if !api.Retryable(err) || errors.Is(err, api.ErrNotFound) {
				return backoff.Permanent(err)
			}
			return err
		}
		meta = m
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Debug("query meta fetch failed, retrying",
			zap.String("query_id", queryID), zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(s.metaBackOff(), ctx), notify); err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.OpMeta, metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.RequestsTotal.WithLabelValues(metrics.OpMeta, metrics.OutcomeOK).Inc()
	return meta, nil
}

// Reconcile replaces the local snapshot with the server's metadata.
func (s *Service) Reconcile(meta model.QueryMeta) {
	s.snapshots[meta.ID] = meta
}

// Snapshot returns the locally cached metadata for a query; it may be stale.
func (s *Service) Snapshot(queryID string) (model.QueryMeta, bool) {
	m, ok := s.snapshots[queryID]
	return m, ok
}
