package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

const (
	apiKeyHeader    = "x-api-key"
	maxResponseSize = 8 << 20
)

type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
}

// client talks to the Colixy REST backend on behalf of one operator.
// Credentials live in the cookie jar of the http.Client it is built with.
type client struct {
	http      *http.Client
	baseURL   string
	imageBase string
	apiKey    string
}

func NewClient(httpClient *http.Client, cfg Config) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		http:      httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		imageBase: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:    cfg.APIKey,
	}
}

// ImageURL turns a stored image path into an absolute URL.
func (c *client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.imageBase + "/" + strings.TrimLeft(path, "/")
}

type request struct {
	op       string
	fallback string
	method   string
	path     string
	query    url.Values

	body        io.Reader
	contentType string
}

func (r request) withJSON(v any) (request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return r, &model.RequestError{Op: r.op, Message: r.fallback, Cause: err}
	}
	r.body = bytes.NewReader(b)
	r.contentType = "application/json"
	return r, nil
}

func (c *client) doJSON(ctx context.Context, r request, in any, out any) error {
	if in != nil {
		var err error
		if r, err = r.withJSON(in); err != nil {
			return err
		}
	}
	return c.do(ctx, r, out)
}

func (c *client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return &model.RequestError{Op: r.op, Message: r.fallback, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &model.RequestError{Op: r.op, Message: r.fallback, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &model.RequestError{Op: r.op, Status: resp.StatusCode, Message: r.fallback, Cause: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &model.RequestError{
			Op:      r.op,
			Status:  resp.StatusCode,
			Message: messageFrom(raw, r.fallback),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &model.RequestError{
			Op:      r.op,
			Status:  resp.StatusCode,
			Message: r.fallback,
			Cause:   fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// messageFrom prefers the backend's own message over the operation fallback.
func messageFrom(raw []byte, fallback string) string {
	var body dto.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	switch {
	case strings.TrimSpace(body.Message) != "":
		return body.Message
	case strings.TrimSpace(body.Error) != "":
		return body.Error
	default:
		return fallback
	}
}

func pathID(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
