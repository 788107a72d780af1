package search

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/bluesky-social/indigo/xrpc"
)

const (
	// DefaultMaxRetries bounds transient-failure retries per query;
	// maxRetries+1 attempts are made in total.
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the first backoff delay. It doubles with
	// every further attempt.
	DefaultBaseDelay = 500 * time.Millisecond
)

// Searcher wraps a Client with retry and exponential backoff for
// transient failures.
type Searcher struct {
	client     Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
}

func NewSearcher(client Client) *Searcher {
	return &Searcher{
		client:     client,
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		sleep:      time.Sleep,
	}
}

// Search runs a single-page search for the query, retrying transient
// failures with exponential backoff. Non-retryable errors propagate
// immediately; exhausting the retries propagates the last error.
func (s *Searcher) Search(ctx context.Context, query string, lang string) ([]Post, error) {
	for attempt := 0; ; attempt++ {
		posts, err := s.client.SearchPosts(ctx, query, lang)
		if err == nil {
			return posts, nil
		}

		if !isRetryable(err) || attempt >= s.maxRetries {
			return nil, err
		}

		delay := time.Duration(1<<uint(attempt)) * s.baseDelay
		slog.Warn("Search failed, retry scheduled", "query", query, "retry_count", attempt+1, "max_retries", s.maxRetries, "delay", delay.String(), "error", err)
		s.sleep(delay)
	}
}

// isRetryable reports whether a search error is transient: a server-side
// status of 500 or above, an XRPC error carrying no status or an
// InternalServerError reason, or a low-level connection failure such as
// a timeout, a reset or a temporary DNS problem.
func isRetryable(err error) bool {
	var xrpcErr *xrpc.Error
	if errors.As(err, &xrpcErr) {
		if xrpcErr.StatusCode >= 500 || xrpcErr.StatusCode == 0 {
			return true
		}

		var apiErr *xrpc.XRPCError
		if errors.As(xrpcErr.Wrapped, &apiErr) && apiErr.ErrStr == "InternalServerError" {
			return true
		}

		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT)
}
