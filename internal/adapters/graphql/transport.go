package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "inkverse/internal/platform/errors"
	"inkverse/internal/platform/logger"

	"github.com/google/uuid"
)

const maxResponseBytes = 8 << 20

// transport is the terminal Handler: one POST per operation
type transport struct {
	http    *http.Client
	url     string
	headers http.Header
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
}

func (t *transport) do(ctx context.Context, op Operation) (*Response, error) {
	body, err := json.Marshal(request{Query: op.Query, OperationName: op.Name, Variables: op.Variables})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "graphql %s: encode variables", op.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "graphql %s: new request", op.Name)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/graphql-response+json, application/json")
	for k, vv := range t.headers {
		req.Header[k] = vv
	}
	for k, vv := range headersFrom(ctx) {
		req.Header[k] = vv
	}
	reqID := req.Header.Get("X-Request-ID")
	if reqID == "" {
		if reqID = logger.RequestID(ctx); reqID == "" {
			reqID = t.newID()
		}
		req.Header.Set("X-Request-ID", reqID)
	}

	start := t.now()
	resp, err := t.http.Do(req)
	lat := t.now().Sub(start)
	if err != nil {
		if cerr := perr.FromContext(ctx, "graphql "+op.Name); cerr != nil {
			return nil, cerr
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "graphql %s: transport", op.Name)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			t.log.Debug().Err(cerr).Str("operation", op.Name).Msg("graphql body close failed")
		}
	}()

	t.log.Debug().
		Str("operation", op.Name).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("graphql http response")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if cerr := perr.FromContext(ctx, "graphql "+op.Name); cerr != nil {
			return nil, cerr
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "graphql %s: read body", op.Name)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "graphql %s: rate limited", op.Name)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "graphql %s: server status %d", op.Name, resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, perr.Newf(perr.ErrorCodeUnavailable, "graphql %s: status %d", op.Name, resp.StatusCode)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "graphql %s: decode response", op.Name)
	}
	if len(out.Errors) > 0 {
		return &out, responseError(op.Name, out.Errors)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &out, perr.Newf(perr.ErrorCodeUnavailable, "graphql %s: status %d", op.Name, resp.StatusCode)
	}
	return &out, nil
}

func newRequestID() string { return uuid.NewString() }
