package cyrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	cyerr "github.com/cygraph/cygo/pkg/errors"
	"github.com/cygraph/cygo/pkg/httputil"
	"github.com/cygraph/cygo/pkg/observability"
)

// retryBaseDelay is the initial backoff for read-only retries; it doubles
// after each failed attempt.
const retryBaseDelay = 500 * time.Millisecond

// execute performs one HTTP call with the operation's retry policy and
// maps transport- and HTTP-level failures into the error taxonomy:
//
//	connection refused / timeout → SERVICE_UNAVAILABLE
//	HTTP 4xx                     → INVALID_REQUEST (server message kept)
//	HTTP 5xx                     → SERVICE_ERROR
//
// Only read-only descriptors retry, and only on transport-level failures;
// 4xx/5xx are never retried because CyREST calls are not assumed
// idempotent.
func (c *Client) execute(ctx context.Context, d *Descriptor, urlStr string, body []byte) ([]byte, error) {
	attempts := 1
	if d.ReadOnly && c.retryCount > 0 {
		attempts += c.retryCount
	}

	var raw []byte
	err := httputil.Retry(ctx, attempts, retryBaseDelay, func() error {
		data, err := c.doOnce(ctx, d, urlStr, body)
		if err != nil {
			return err
		}
		raw = data
		return nil
	})
	return raw, err
}

func (c *Client) doOnce(ctx context.Context, d *Descriptor, urlStr string, body []byte) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, d.Method, urlStr, reader)
	if err != nil {
		return nil, cyerr.Wrap(cyerr.ErrCodeInternal, err, "build request for %s", d.Op)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	observability.HTTP().OnRequest(ctx, d.Method, urlStr)
	resp, err := c.httpc.Do(req)
	if err != nil {
		// The connection context is stale after any transport failure;
		// force a re-probe before the next operation.
		c.Invalidate()
		observability.HTTP().OnError(ctx, d.Method, urlStr, err)
		unavailable := cyerr.Wrap(cyerr.ErrCodeServiceUnavailable, err, "%s %s", d.Method, urlStr)
		return nil, httputil.Retryable(unavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Invalidate()
		unavailable := cyerr.Wrap(cyerr.ErrCodeServiceUnavailable, err, "read response of %s %s", d.Method, urlStr)
		return nil, httputil.Retryable(unavailable)
	}

	c.logger.Debug("cyrest call",
		"op", d.Op, "method", d.Method, "url", urlStr,
		"status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))
	observability.HTTP().OnResponse(ctx, d.Method, urlStr, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, cyerr.Wrap(cyerr.ErrCodeInvalidRequest,
			serverError(raw, resp.StatusCode), "%s %s", d.Method, urlStr)
	case resp.StatusCode >= 500:
		return nil, cyerr.Wrap(cyerr.ErrCodeService,
			serverError(raw, resp.StatusCode), "%s %s", d.Method, urlStr)
	default:
		return nil, cyerr.New(cyerr.ErrCodeProtocol,
			"unexpected status %d from %s %s", resp.StatusCode, d.Method, urlStr)
	}
}

// serverError extracts the message Cytoscape attached to a failed request
// so it survives verbatim in the error chain. CyREST wraps messages in a
// handful of envelopes; unrecognized bodies are kept as trimmed text.
func serverError(raw []byte, status int) error {
	msg := strings.TrimSpace(string(raw))

	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			msg = envelope.Message
		case envelope.Error != "":
			msg = envelope.Error
		case len(envelope.Errors) > 0 && envelope.Errors[0].Message != "":
			msg = envelope.Errors[0].Message
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("status %d: %s", status, msg)
}
