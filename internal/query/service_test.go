package query

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/model"
)

// fakeAPI is an in-memory query store with the same contract as the service.
type fakeAPI struct {
	queries   map[string]model.QueryMeta
	next      int
	createErr error
	metaErrs  []error
	metaCalls int
	// replyID, when set, is returned by UpdateQuery instead of the id.
	replyID string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{queries: make(map[string]model.QueryMeta)}
}

func (f *fakeAPI) CreateQuery(_ context.Context, q model.UserQuery) (*model.QueryHandle, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.next++
	id := fmt.Sprintf("q%d", f.next)
	f.queries[id] = model.QueryMeta{ID: id, Params: q, TotalResults: 42, Version: 1}
	return &model.QueryHandle{QueryID: id, TotalResults: 42}, nil
}

func (f *fakeAPI) UpdateQuery(_ context.Context, id string, q model.UserQuery) (*model.QueryHandle, error) {
	m, ok := f.queries[id]
	if !ok {
		return nil, fmt.Errorf("%w: query %s: %w", api.ErrUpdateFailed, id, api.ErrNotFound)
	}
	m.Params = q
	m.Version++
	m.TotalResults = 7
	f.queries[id] = m
	if f.replyID != "" {
		return &model.QueryHandle{QueryID: f.replyID, TotalResults: 7}, nil
	}
	return &model.QueryHandle{QueryID: id, TotalResults: 7}, nil
}

func (f *fakeAPI) GetQueryMeta(_ context.Context, id string) (*model.QueryMeta, error) {
	f.metaCalls++
	if len(f.metaErrs) > 0 {
		err := f.metaErrs[0]
		f.metaErrs = f.metaErrs[1:]
		return nil, err
	}
	m, ok := f.queries[id]
	if !ok {
		return nil, fmt.Errorf("%w: query %s: %w", api.ErrMetaFetchFailed, id, api.ErrNotFound)
	}
	return &m, nil
}

func newTestService(f *fakeAPI) *Service {
	s := New(f, nil)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	s.metaBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
	}
	return s
}

func TestCreate_RoundTripsParams(t *testing.T) {
	f := newFakeAPI()
	s := newTestService(f)
	ctx := context.Background()

	u := model.UserQuery{Query: "  合同纠纷 ", AY: "民间借贷纠纷", FYMC: "北京市高级人民法院"}
	h, err := s.Create(ctx, u)
	require.NoError(t, err)
	s.Commit(h, u)

	meta, err := s.FetchMeta(ctx, h.QueryID)
	require.NoError(t, err)
	assert.Equal(t, u.Canonical(), meta.Params)

	snap, ok := s.Snapshot(h.QueryID)
	require.True(t, ok)
	assert.Equal(t, u.Canonical(), snap.Params)
	assert.Equal(t, 1, snap.Version)
	assert.Equal(t, 42, snap.TotalResults)
}

func TestCreate_EmptyQueryPassesThrough(t *testing.T) {
	s := newTestService(newFakeAPI())
	h, err := s.Create(context.Background(), model.UserQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, h.QueryID)
}

func TestCreate_Failure(t *testing.T) {
	f := newFakeAPI()
	f.createErr = errors.New("connection refused")
	s := newTestService(f)

	_, err := s.Create(context.Background(), model.UserQuery{Query: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrCreationFailed)
}

func TestUpdate_UnknownIDLeavesSnapshots(t *testing.T) {
	f := newFakeAPI()
	s := newTestService(f)
	ctx := context.Background()

	u := model.UserQuery{Query: "a"}
	h, err := s.Create(ctx, u)
	require.NoError(t, err)
	s.Commit(h, u)
	before, _ := s.Snapshot(h.QueryID)

	_, err = s.Update(ctx, "missing", model.UserQuery{Query: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUpdateFailed)
	assert.ErrorIs(t, err, api.ErrNotFound)

	after, _ := s.Snapshot(h.QueryID)
	assert.Equal(t, before, after)
	_, ok := s.Snapshot("missing")
	assert.False(t, ok)
}

func TestUpdate_BumpsSnapshotVersion(t *testing.T) {
	f := newFakeAPI()
	s := newTestService(f)
	ctx := context.Background()

	u := model.UserQuery{Query: "a"}
	h, err := s.Create(ctx, u)
	require.NoError(t, err)
	s.Commit(h, u)

	v := model.UserQuery{Query: "a", AY: "离婚纠纷"}
	h2, err := s.Update(ctx, h.QueryID, v)
	require.NoError(t, err)
	s.Commit(h2, v)

	snap, _ := s.Snapshot(h.QueryID)
	assert.Equal(t, 2, snap.Version)
	assert.Equal(t, 7, snap.TotalResults)
	assert.Equal(t, v, snap.Params)
	assert.Equal(t, f.queries[h.QueryID].Version, snap.Version)
}

func TestUpdate_KeepsQueryIDWhenReplyMintsAnother(t *testing.T) {
	f := newFakeAPI()
	f.replyID = "fresh"
	s := newTestService(f)
	ctx := context.Background()

	h, err := s.Create(ctx, model.UserQuery{Query: "借款"})
	require.NoError(t, err)
	s.Commit(h, model.UserQuery{Query: "借款"})

	updated, err := s.Update(ctx, h.QueryID, model.UserQuery{Query: "借款", AY: "民间借贷纠纷"})
	require.NoError(t, err)
	assert.Equal(t, h.QueryID, updated.QueryID)
	s.Commit(updated, model.UserQuery{Query: "借款", AY: "民间借贷纠纷"})

	snap, ok := s.Snapshot(h.QueryID)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Version)
	assert.Equal(t, "民间借贷纠纷", snap.Params.AY)
	assert.Equal(t, 7, snap.TotalResults)

	_, ok = s.Snapshot("fresh")
	assert.False(t, ok, "no snapshot under the reply id")
}

func TestFetchMeta_RetriesTransientErrors(t *testing.T) {
	f := newFakeAPI()
	s := newTestService(f)
	ctx := context.Background()

	h, err := s.Create(ctx, model.UserQuery{Query: "a"})
	require.NoError(t, err)

	f.metaErrs = []error{errors.New("reset by peer")}
	meta, err := s.FetchMeta(ctx, h.QueryID)
	require.NoError(t, err)
	assert.Equal(t, h.QueryID, meta.ID)
	assert.Equal(t, 2, f.metaCalls)
}

func TestFetchMeta_NotFoundIsPermanent(t *testing.T) {
	f := newFakeAPI()
	s := newTestService(f)

	_, err := s.FetchMeta(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 1, f.metaCalls)
}

func TestReconcile_ReplacesSnapshot(t *testing.T) {
	s := newTestService(newFakeAPI())
	s.Reconcile(model.QueryMeta{ID: "q9", Version: 4})
	snap, ok := s.Snapshot("q9")
	require.True(t, ok)
	assert.Equal(t, 4, snap.Version)
}
