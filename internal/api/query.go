package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/altinukshini/casesearch/internal/model"
)

const DefaultPageSize = 10

type ResultsFilter struct {
	QueryID  string
	Page     int
	PageSize int
}

func (f ResultsFilter) QueryString() string {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	} else {
		v.Set("page", "1")
	}
	if f.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(f.PageSize))
	} else {
		v.Set("page_size", strconv.Itoa(DefaultPageSize))
	}
	return "?" + v.Encode()
}

func queryPath(queryID string) string {
	return "query/" + url.PathEscape(queryID)
}

func (c *Client) CreateQuery(ctx context.Context, q model.UserQuery) (*model.QueryHandle, error) {
	var resp model.QueryHandle
	err := c.Post(ctx, "query", model.CreateQueryRequest{UserQuery: q}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}
	if resp.QueryID == "" {
		return nil, fmt.Errorf("%w: response has no query_id", ErrCreationFailed)
	}
	return &resp, nil
}

func (c *Client) UpdateQuery(ctx context.Context, queryID string, q model.UserQuery) (*model.QueryHandle, error) {
	var resp model.QueryHandle
	body := model.UpdateQueryRequest{QueryID: queryID, UserQuery: q}
	err := c.Put(ctx, queryPath(queryID), body, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: query %s: %w", ErrUpdateFailed, queryID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: query %s: %w", ErrUpdateFailed, queryID, err)
	}
	if resp.QueryID == "" {
		resp.QueryID = queryID
	}
	return &resp, nil
}

func (c *Client) GetQueryMeta(ctx context.Context, queryID string) (*model.QueryMeta, error) {
	var meta model.QueryMeta
	err := c.Get(ctx, queryPath(queryID), &meta)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: query %s: %w", ErrMetaFetchFailed, queryID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: query %s: %w", ErrMetaFetchFailed, queryID, err)
	}
	return &meta, nil
}

func (c *Client) ListResults(ctx context.Context, filter ResultsFilter) (*model.ResultPage, error) {
	var page model.ResultPage
	err := c.Get(ctx, queryPath(filter.QueryID)+"/results"+filter.QueryString(), &page)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: query %s: %w", ErrResultsFetchFailed, filter.QueryID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: query %s page %d: %w", ErrResultsFetchFailed, filter.QueryID, filter.Page, err)
	}
	return &page, nil
}
