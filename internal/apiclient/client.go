package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
	Proxy   string
	Debug   bool
}

// Client is the parking API client. It is safe for concurrent use.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	hooks []RequestHook
}

// New creates a client bound to cfg.BaseURL. Requests outside /login carry
// the token found in tokens, if any.
func New(cfg Config, tokens TokenSource) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeaders(cfg.Headers).
		SetDebug(cfg.Debug)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.Proxy != "" {
		rc.SetProxy(cfg.Proxy)
	}

	return &Client{
		http:  rc,
		hooks: []RequestHook{AuthorizeRequest(tokens)},
	}
}

// Use appends hooks that run after the authorization hook. Requests already
// in flight keep the hooks they started with.
func (c *Client) Use(hooks ...RequestHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks[:len(c.hooks):len(c.hooks)], hooks...)
}

func (c *Client) currentHooks() []RequestHook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hooks
}

// Do sends req through the hook pipeline and decodes the unwrapped payload
// into out. out may be nil when no payload is expected.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.URL == "" {
		return &RequestError{Method: req.Method, URL: req.URL, Err: errors.New("empty url")}
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	req, err := runHooks(req, c.currentHooks())
	if err != nil {
		return err
	}

	data, err := Unwrap(c.send(ctx, req))
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{URL: req.URL, Err: err}
	}
	return nil
}

// send performs the transport step. Transport failures are returned unchanged.
func (c *Client) send(ctx context.Context, req Request) (Response, error) {
	r := c.http.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		body, err := json.Marshal(req.Body)
		if err != nil {
			return Response{}, &RequestError{Method: req.Method, URL: req.URL, Err: err}
		}
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return Response{}, err
	}

	out := Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Data:       resp.Body(),
	}
	if !out.OK() {
		return out, &StatusError{Response: out}
	}
	return out, nil
}
