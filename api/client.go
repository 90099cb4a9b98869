package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ErrorKind classifies a failed remote call.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindRemote       ErrorKind = "remote"
)

// Error carries the server-supplied message when one exists, so the
// caller can show it to the user verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindUnauthorized
}

// envelope is the uniform response wrapper every endpoint returns.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the remote platform API.
type Client struct {
	http      *resty.Client
	limiter   *rate.Limiter
	token     string
	sessionID string
}

func New(baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	})
	client.SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
					if t, err := http.ParseTime(retryAfter); err == nil {
						return time.Until(t), nil
					}
				}
				return 2 * time.Second, nil
			}
			return 0, nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests
		})

	return &Client{
		http:      client,
		limiter:   rate.NewLimiter(rate.Limit(8), 16),
		sessionID: uuid.NewString(),
	}
}

// SetToken installs the access token used on authenticated calls.
// An empty token reverts the client to anonymous.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetLogger(disableLogger{}).
		SetHeader("Accept", "application/json").
		SetHeader("X-Client-Session", c.sessionID)
	if c.token != "" {
		req.SetHeader("Authorization", "Bearer "+c.token)
	}
	return req
}

// do executes a request and decodes the response envelope into out.
// A nil out discards the payload.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	req := c.request(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to reach server: %v", err)}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &Error{Kind: KindRemote, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if !env.Success || resp.StatusCode() >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Kind: kindForStatus(resp.StatusCode()), Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindRemote, Message: fmt.Sprintf("failed to decode payload: %v", err)}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindRemote
	}
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
