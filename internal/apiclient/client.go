package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	EndpointHealth         = "health"
	EndpointLanguages      = "languages"
	EndpointTranslate      = "translate"
	EndpointBatchTranslate = "batch-translate"
	EndpointSpeechToText   = "speech-to-text"
	EndpointTextToSpeech   = "text-to-speech"

	defaultTimeout = 30 * time.Second
	maxBodySize    = 10 << 20
)

// Client talks to the translation API over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *logger.ZapLogger
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout on a copy of the current client, so a shared
// client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, EndpointHealth, http.MethodGet, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Languages(ctx context.Context) (*LanguagesResponse, error) {
	var out LanguagesResponse
	if err := c.call(ctx, EndpointLanguages, http.MethodGet, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode translate request: %w", err)
	}

	var out TranslateResponse
	if err := c.call(ctx, EndpointTranslate, http.MethodPost, body, "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BatchTranslate(ctx context.Context, req BatchTranslateRequest) (*BatchTranslateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode batch request: %w", err)
	}

	var out BatchTranslateResponse
	if err := c.call(ctx, EndpointBatchTranslate, http.MethodPost, body, "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SpeechToText(ctx context.Context, req SpeechToTextRequest) (*SpeechToTextResponse, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	filename := req.Filename
	if filename == "" {
		filename = "recording.wav"
	}
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("create audio part: %w", err)
	}
	if _, err := io.Copy(part, req.Audio); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if req.Language != "" {
		if err := mw.WriteField("language", req.Language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var out SpeechToTextResponse
	if err := c.call(ctx, EndpointSpeechToText, http.MethodPost, buf.Bytes(), mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TextToSpeech(ctx context.Context, req TextToSpeechRequest) (*TextToSpeechResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode tts request: %w", err)
	}

	var out TextToSpeechResponse
	if err := c.call(ctx, EndpointTextToSpeech, http.MethodPost, body, "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveURL turns a reference returned by the API (e.g. "/audio/x.mp3") into
// an absolute URL on the API host. Unparseable references are returned as is.
func (c *Client) ResolveURL(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

func (c *Client) call(ctx context.Context, endpoint, method string, body []byte, contentType string, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, endpoint, method, body, contentType, out)
	observe(endpoint, start, err)

	if err != nil && c.log != nil {
		c.log.Log(logger.LogEntry{Level: "warn", Message: "api call failed: " + endpoint, Error: err})
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, endpoint, method string, body []byte, contentType string, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	target := c.baseURL.JoinPath("api", endpoint)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: executing request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", endpoint, err)
	}

	var status struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &status)

	if resp.StatusCode >= 300 {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: status.Error}
	}
	if status.Success != nil && !*status.Success {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: status.Error}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", endpoint, err)
	}
	return nil
}
