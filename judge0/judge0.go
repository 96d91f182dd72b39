// Package judge0 is a thin client for the Judge0 sandboxed-execution API.
// Submissions are sent with wait=true so the provider runs the snippet to
// completion before responding; there is no polling.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultHost is the RapidAPI host used when none is configured
const DefaultHost = "judge0-ce.p.rapidapi.com"

// ErrMissingKey means the server-side credential is absent; this is a
// configuration error, distinct from a runtime failure of the API.
var ErrMissingKey = errors.New("JUDGE0_API_KEY is not set on the server.")

// UpstreamError carries a non-success response from the execution API,
// preserving the provider's raw text for diagnosis.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("judge0 returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("judge0 returned %d", e.StatusCode)
}

// Result is the normalized execution outcome: always exactly four fields,
// empty strings substituted for anything the upstream omitted.
type Result struct {
	Stdout        string
	Stderr        string
	CompileOutput string
	Status        map[string]interface{}
}

// Client calls the execution API. The zero HTTPClient falls back to a
// 90-second default, generous enough for wait=true submissions.
type Client struct {
	APIKey     string
	Host       string
	HTTPClient *http.Client

	results *cache.Cache
}

// New builds a client. Identical submissions within a short window are
// served from an in-process cache to spare upstream quota.
func New(apiKey, host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		APIKey:     apiKey,
		Host:       host,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
		results:    cache.New(30*time.Second, time.Minute),
	}
}

type submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

type submissionResult struct {
	Stdout        *string                `json:"stdout"`
	Stderr        *string                `json:"stderr"`
	CompileOutput *string                `json:"compile_output"`
	Status        map[string]interface{} `json:"status"`
}

// Run forwards the snippet and waits for the provider's synchronous result
func (c *Client) Run(ctx context.Context, sourceCode string, languageID int) (*Result, error) {
	if c.APIKey == "" {
		return nil, ErrMissingKey
	}

	key := fmt.Sprintf("%d\x00%s", languageID, sourceCode)
	if c.results != nil {
		if hit, found := c.results.Get(key); found {
			return hit.(*Result), nil
		}
	}

	body, err := json.Marshal(submission{SourceCode: sourceCode, LanguageID: languageID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submissionURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.Host)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		zap.S().Warnw("judge0 submission rejected", "status", resp.StatusCode)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var sr submissionResult
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}

	res := &Result{
		Stdout:        deref(sr.Stdout),
		Stderr:        deref(sr.Stderr),
		CompileOutput: deref(sr.CompileOutput),
		Status:        sr.Status,
	}
	if res.Status == nil {
		res.Status = map[string]interface{}{}
	}
	if c.results != nil {
		c.results.Set(key, res, cache.DefaultExpiration)
	}
	return res, nil
}

func (c *Client) submissionURL() string {
	host := c.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host + "/submissions?base64_encoded=false&wait=true"
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 90 * time.Second}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
