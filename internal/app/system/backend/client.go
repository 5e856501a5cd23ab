// internal/app/system/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single backend call when the caller's context has
// no earlier deadline.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Session is the caller's bearer credential. The zero value makes
// unauthenticated calls.
type Session struct {
	Token string
}

// Authorized reports whether the session carries a token.
func (s Session) Authorized() bool { return s.Token != "" }

// Client talks to the event platform's REST API.
type Client struct {
	base    *url.URL
	http    *http.Client
	log     *zap.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records call latency and failures.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout sets the http.Client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for baseURL (e.g. http://localhost:4000/api/v1/).
// Endpoint paths are resolved relative to it.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) URL", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: DefaultTimeout},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.base.String() }

// ErrInvalidID is returned when a record id cannot be used as a path segment.
var ErrInvalidID = errors.New("backend: invalid id")

// segment validates an id before it is placed in a URL path.
func segment(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/?#\\") {
		return "", ErrInvalidID
	}
	return id, nil
}

// endpoint builds an absolute URL from a relative path and optional query.
func (c *Client) endpoint(p string, q url.Values) string {
	u := *c.base
	u.Path = path.Join(c.base.Path, p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// call describes one request. name is the low-cardinality metric label
// (e.g. "events/{id}").
type call struct {
	name   string
	method string
	path   string
	query  url.Values
	body   io.Reader
	ctype  string
	sess   Session
}

func (c *Client) do(ctx context.Context, k call, out any) error {
	req, err := http.NewRequestWithContext(ctx, k.method, c.endpoint(k.path, k.query), k.body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", k.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if k.ctype != "" {
		req.Header.Set("Content-Type", k.ctype)
	}
	if k.sess.Authorized() {
		req.Header.Set("Authorization", "Bearer "+k.sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(k.name, k.method, 0, time.Since(start))
		c.metrics.fail(k.name, "network")
		c.log.Warn("backend call failed",
			zap.String("endpoint", k.name),
			zap.String("method", k.method),
			zap.Error(err))
		return &NetworkError{Op: k.name, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.observe(k.name, k.method, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.fail(k.name, "server")
		se := &ServerError{Op: k.name, Status: resp.StatusCode, Message: readMessage(resp.Body)}
		c.log.Info("backend returned error status",
			zap.String("endpoint", k.name),
			zap.Int("status", resp.StatusCode),
			zap.String("message", se.Message))
		return se
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		c.metrics.fail(k.name, "decode")
		return &NetworkError{Op: k.name, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readMessage extracts {"message": "..."} from an error body, falling back
// to a short plain-text body.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	s := strings.TrimSpace(string(b))
	if len(s) > 200 || strings.HasPrefix(s, "<") {
		return ""
	}
	return s
}

func (c *Client) get(ctx context.Context, sess Session, name, p string, q url.Values, out any) error {
	return c.do(ctx, call{name: name, method: http.MethodGet, path: p, query: q, sess: sess}, out)
}

func (c *Client) sendJSON(ctx context.Context, sess Session, method, name, p string, in, out any) error {
	var body io.Reader
	ctype := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", name, err)
		}
		body = bytes.NewReader(b)
		ctype = "application/json"
	}
	return c.do(ctx, call{name: name, method: method, path: p, body: body, ctype: ctype, sess: sess}, out)
}

// Upload is one file sent in a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Form is a multipart body: repeated text fields plus files per field.
type Form struct {
	Fields map[string][]string
	Files  map[string][]Upload
}

func (c *Client) sendMultipart(ctx context.Context, sess Session, method, name, p string, f Form, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range f.Fields {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				return fmt.Errorf("encode %s field %s: %w", name, key, err)
			}
		}
	}
	for key, files := range f.Files {
		for _, up := range files {
			fn := up.Filename
			if fn == "" {
				fn = uuid.NewString()
			}
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, key, fn))
			ct := up.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			part, err := mw.CreatePart(h)
			if err != nil {
				return fmt.Errorf("encode %s file: %w", name, err)
			}
			if _, err := io.Copy(part, up.Body); err != nil {
				return fmt.Errorf("encode %s file: %w", name, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return c.do(ctx, call{name: name, method: method, path: p, body: &buf, ctype: mw.FormDataContentType(), sess: sess}, out)
}
