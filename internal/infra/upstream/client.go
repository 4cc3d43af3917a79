// Package upstream talks to the club registry and the court booking platform.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"club-roster/internal/infra"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/errs"
)

const (
	sourceRegistry = "registry"
	sourceBooking  = "booking"

	// responses larger than this are rejected rather than buffered
	maxBodyBytes = 32 << 20
)

type httpClient struct {
	source    string
	client    *http.Client
	userAgent string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func newHTTPClient(source string, timeout time.Duration, userAgent string, logger *slog.Logger, m *metrics.Metrics) httpClient {
	if logger == nil {
		logger = slog.Default()
	}
	return httpClient{
		source:    source,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
		metrics:   m,
	}
}

// get performs a GET and returns the body of a 200 response. endpoint only
// labels logs and metrics.
func (c httpClient) get(ctx context.Context, endpoint, url string, header http.Header) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindUpstreamFailure, "create request", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordUpstream(c.source, endpoint, "error", time.Since(start).Seconds())
		if ctx.Err() != nil {
			return nil, errs.Wrapf(ctx.Err(), "%s %s", c.source, endpoint)
		}
		return nil, errs.Mark(
			infra.WrapRepoErr(c.logger, infra.KindUpstreamFailure, fmt.Sprintf("%s %s request failed", c.source, endpoint), err),
			errs.ErrUpstreamUnavailable,
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		c.metrics.RecordUpstream(c.source, endpoint, "error", time.Since(start).Seconds())
		return nil, errs.Mark(
			infra.WrapRepoErr(c.logger, infra.KindUpstreamFailure, fmt.Sprintf("%s %s read body", c.source, endpoint), err),
			errs.ErrUpstreamUnavailable,
		)
	}
	c.metrics.RecordUpstream(c.source, endpoint, fmt.Sprint(resp.StatusCode), time.Since(start).Seconds())

	if len(body) > maxBodyBytes {
		return nil, errs.Mark(
			infra.WrapRepoErr(c.logger, infra.KindUpstreamFailure, fmt.Sprintf("%s %s response too large", c.source, endpoint), nil),
			errs.ErrUpstreamResponse,
		)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Mark(
			infra.WrapRepoErr(c.logger, infra.KindUpstreamFailure,
				fmt.Sprintf("%s %s responded with status %d", c.source, endpoint, resp.StatusCode),
				errs.Newf("HTTP %d: %s", resp.StatusCode, snippet(body))),
			errs.ErrUpstreamResponse,
		)
	}

	c.logger.Debug("Upstream request completed",
		"source", c.source,
		"endpoint", endpoint,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

func snippet(b []byte) string {
	const n = 200
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func decodeErr(logger *slog.Logger, source, endpoint string, err error) error {
	return errs.Mark(
		infra.WrapRepoErr(logger, infra.KindDecodeFailure, fmt.Sprintf("%s %s decode", source, endpoint), err),
		errs.ErrUpstreamResponse,
	)
}
