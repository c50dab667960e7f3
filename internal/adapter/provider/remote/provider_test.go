package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, rawURL string) *Provider {
	t.Helper()
	p, err := NewProvider(rawURL, wordlist.EncodingUTF8, newTestLogger())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestProvider_Fetch_Properties(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists/Library.properties" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("cat=Miau\nhello=Oi\n"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/lists/Library.properties")
	entries, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Entry{{Key: "cat", Value: "Miau"}, {Key: "hello", Value: "Oi"}}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestProvider_Fetch_YAML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("entries:\n  - source: cat\n    target: Miau\n"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/words.yaml")
	entries, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != "Miau" {
		t.Errorf("entries = %+v, want [{cat Miau}]", entries)
	}
}

func TestProvider_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/missing.properties")
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestProvider_Fetch_RetryOn500(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("cat=Miau\n"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/Library.properties")
	entries, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProvider_Fetch_RetryFailsTwice(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/Library.properties")
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected error after failed retry")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProvider_Fetch_NoRetryOn4xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/Library.properties")
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 403")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestProvider_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cat=Miau\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProvider(t, srv.URL+"/Library.properties")
	if _, err := p.Fetch(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNewProvider_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"ftp://example.com/a.properties",
		"https://example.com/a.json",
		"://bad",
	}
	for _, raw := range tests {
		if _, err := NewProvider(raw, wordlist.EncodingUTF8, newTestLogger()); err == nil {
			t.Errorf("NewProvider(%q) expected error", raw)
		}
	}
}

func TestProvider_Fetch_RejectsOversizedBody(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("cat=Miau\n", 20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/library.properties")
	p.maxBody = int64(len(body)) - 1

	entries, err := p.Fetch(context.Background())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got entries=%d err=%v", len(entries), err)
	}
	if entries != nil {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestProvider_Fetch_BodyAtLimit(t *testing.T) {
	t.Parallel()

	body := "cat=Miau\nhello=Oi\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL+"/library.properties")
	p.maxBody = int64(len(body))

	entries, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}
