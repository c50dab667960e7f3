// Package remote fetches word lists over HTTP.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

const (
	defaultTimeout = 10 * time.Second
	retryDelay     = 500 * time.Millisecond
	// maxBodySize bounds a downloaded word list.
	maxBodySize = 16 << 20
)

// ErrTooLarge is returned when a word list exceeds the download limit. The
// list is rejected as a whole rather than decoded in part.
var ErrTooLarge = errors.New("remote: word list exceeds size limit")

// Provider downloads one word list from a fixed URL.
type Provider struct {
	url        string
	format     wordlist.Format
	enc        wordlist.Encoding
	httpClient *http.Client
	maxBody    int64
	log        *slog.Logger
}

// NewProvider creates a Provider for rawURL. The word-list format is taken
// from the extension of the URL path.
func NewProvider(rawURL string, enc wordlist.Encoding, logger *slog.Logger) (*Provider, error) {
	return NewProviderWithClient(rawURL, enc, &http.Client{Timeout: defaultTimeout}, logger)
}

// NewProviderWithClient creates a Provider that uses client for requests.
func NewProviderWithClient(rawURL string, enc wordlist.Encoding, client *http.Client, logger *slog.Logger) (*Provider, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("remote: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote: unsupported scheme %q", u.Scheme)
	}
	format, err := wordlist.FormatFromPath(u.Path)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}
	return &Provider{
		url:        rawURL,
		format:     format,
		enc:        enc,
		httpClient: client,
		maxBody:    maxBodySize,
		log:        logger.With("adapter", "remote"),
	}, nil
}

func (p *Provider) Name() string { return p.url }

// Fetch downloads and decodes the word list.
func (p *Provider) Fetch(ctx context.Context) ([]domain.Entry, error) {
	p.log.DebugContext(ctx, "remote request", slog.String("url", p.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "remote request failed", slog.String("url", p.url), slog.String("error", err.Error()))
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("remote: read body: %w", err)
	}
	if int64(len(body)) > p.maxBody {
		p.log.ErrorContext(ctx, "remote word list too large", slog.String("url", p.url), slog.Int64("limit", p.maxBody))
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, p.maxBody)
	}

	entries, err := wordlist.Decode(body, p.format, p.enc)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}

	p.log.DebugContext(ctx, "remote response",
		slog.String("url", p.url),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
	)

	return entries, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "remote retry", slog.String("url", p.url), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}
