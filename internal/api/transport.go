package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-Id"

// requestIDTransport tags every request with a fresh id and logs the exchange.
type requestIDTransport struct {
	rt     http.RoundTripper
	logger *zap.Logger
}

func newRequestIDTransport(rt http.RoundTripper, logger *zap.Logger) http.RoundTripper {
	return &requestIDTransport{rt: rt, logger: logger}
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := t.rt.RoundTrip(req)
	fields := []zap.Field{
		zap.String("request_id", id),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.logger.Warn("api request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.logger.Debug("api request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
