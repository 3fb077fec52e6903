// Package api is a typed client for the business-management PHP REST API.
//
// Every endpoint answers with an envelope ({"success": true, "data": ...} or
// {"status": "success", "data": ...}); bank.php may answer with a bare array.
// Bodies are scanned for the first complete JSON value before decoding so
// stray PHP output in front of the JSON does not break the client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/redaction"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 16 << 20
	snippetBytes   = 256
)

// ErrNoBaseURL is returned by New when no base URL is configured.
var ErrNoBaseURL = errors.New("api base URL is not configured")

// Options configures a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration // 0 means 30s
	Compression bool          // request brotli/gzip responses
	UserAgent   string
	Logger      zerolog.Logger
	Transport   http.RoundTripper // nil means http.DefaultTransport
	// Redact holds extra patterns masked in upstream error text.
	Redact []*regexp.Regexp
}

// Client talks to the PHP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     zerolog.Logger
	redact  []*regexp.Regexp
}

// New returns a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("api.New: %w", ErrNoBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api.New: invalid base URL %q", redaction.Redact(raw, opts.Redact))
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Transport: &headerTransport{
				UserAgent:   opts.UserAgent,
				Compression: opts.Compression,
				Base:        base,
			},
			Timeout: timeout,
		},
		log:    opts.Logger,
		redact: opts.Redact,
	}, nil
}

// BaseURL returns the normalised base URL (always ending in '/').
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := *c.baseURL
	u.Path += endpoint
	u.RawQuery = query.Encode()
	return u.String()
}

// do sends one request and returns the extracted JSON payload.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: marshal: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, query), reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: new request: %w", method, endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req) // #nosec G704 -- URL is the user-configured API base
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("endpoint", endpoint).
			Str("request_id", requestID).Msg("api request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("api request")

	if err := decodeBody(resp); err != nil {
		return nil, fmt.Errorf("%s %s: decompress: %w", method, endpoint, err)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: c.failureText(raw)}
	}

	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return payload, nil
}

// failureText prefers the envelope message of an error body over raw bytes.
// Credentials echoed by the backend are masked.
func (c *Client) failureText(raw []byte) string {
	if payload, err := ExtractJSON(raw); err == nil {
		var env models.Envelope
		if json.Unmarshal(payload, &env) == nil && env.Message != "" {
			return redaction.Redact(env.Message, c.redact)
		}
	}
	return redaction.Redact(snippet(bytes.TrimSpace(raw)), c.redact)
}

// snippet cuts b to at most snippetBytes without splitting a UTF-8 sequence.
func snippet(b []byte) string {
	if len(b) <= snippetBytes {
		return string(b)
	}
	n := snippetBytes
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n])
}

// DisplayURL returns the base URL with credentials masked.
func (c *Client) DisplayURL() string { return redaction.Redact(c.BaseURL(), c.redact) }

// decodeEnvelope checks the success flag of payload and decodes its data
// into out (when non-nil). A bare array counts as a successful data payload.
func decodeEnvelope(endpoint string, payload []byte, out any) (*models.Envelope, error) {
	if len(payload) > 0 && payload[0] == '[' {
		if out != nil {
			if err := json.Unmarshal(payload, out); err != nil {
				return nil, fmt.Errorf("%s: decode: %w", endpoint, err)
			}
		}
		return &models.Envelope{Success: true, Data: payload}, nil
	}

	var env models.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%s: decode envelope: %w", endpoint, err)
	}
	if !env.OK() {
		return nil, &APIError{Endpoint: endpoint, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%s: decode data: %w", endpoint, err)
		}
	}
	return &env, nil
}

// getData issues a GET and decodes the envelope data into a T.
func getData[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (T, error) {
	var out T
	payload, err := c.do(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return out, err
	}
	if _, err := decodeEnvelope(endpoint, payload, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Ack is the acknowledgement of a write.
type Ack struct {
	Message string    `json:"message,omitempty"`
	ID      models.ID `json:"id,omitempty"`
}

// send issues a write request and returns the acknowledgement.
func (c *Client) send(ctx context.Context, method, endpoint string, query url.Values, body any) (*Ack, error) {
	payload, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope(endpoint, payload, nil)
	if err != nil {
		return nil, err
	}

	ack := &Ack{Message: env.Message}
	var ids struct {
		ID       models.ID `json:"id"`
		InsertID models.ID `json:"insert_id"`
	}
	if json.Unmarshal(payload, &ids) == nil {
		ack.ID = firstID(ids.ID, ids.InsertID)
	}
	if ack.ID == "" && len(env.Data) > 0 && env.Data[0] == '{' {
		if json.Unmarshal(env.Data, &ids) == nil {
			ack.ID = firstID(ids.ID, ids.InsertID)
		}
	}
	return ack, nil
}

func firstID(ids ...models.ID) models.ID {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

// idBody is the JSON body of body-style deletes.
type idBody struct {
	ID models.ID `json:"id"`
}

func requireID(op string, id models.ID) error {
	if strings.TrimSpace(id.String()) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidID)
	}
	return nil
}
