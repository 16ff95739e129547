package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	headers := map[string]string{"User-Agent": "test-agent"}
	client := NewClient(5*time.Second, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Fatal("NewClient() http client is nil")
	}
	if client.http.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", client.http.Timeout)
	}
	if client.headers["User-Agent"] != "test-agent" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	if got := NewHTTPClient(0).Timeout; got != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", got, DefaultTimeout)
	}
}

func TestBrowserHeaders(t *testing.T) {
	if ua := BrowserHeaders("")["User-Agent"]; !strings.Contains(ua, "Mozilla/5.0") {
		t.Errorf("default User-Agent = %q", ua)
	}
	if ua := BrowserHeaders("custom/1.0")["User-Agent"]; ua != "custom/1.0" {
		t.Errorf("User-Agent = %q, want custom/1.0", ua)
	}
}

func TestClientGetText(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><h1>hello</h1></html>"))
	}))
	defer server.Close()

	client := NewClient(time.Second, BrowserHeaders("")).WithHTTPClient(server.Client())

	text, err := client.GetText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetText() error: %v", err)
	}
	if text != "<html><h1>hello</h1></html>" {
		t.Errorf("GetText() = %q", text)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want browser UA", gotUA)
	}
}

func TestClientGetTextWithHeadersOverridesDefaults(t *testing.T) {
	var receivedHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("X-Override")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(time.Second, map[string]string{"X-Override": "default"}).WithHTTPClient(server.Client())

	if _, err := client.GetTextWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}); err != nil {
		t.Fatalf("GetTextWithHeaders() error: %v", err)
	}
	if receivedHeader != "overridden" {
		t.Errorf("header = %q, want %q", receivedHeader, "overridden")
	}
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrNetwork},
		{http.StatusInternalServerError, ErrNetwork},
		{http.StatusMovedPermanently, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(time.Second, nil)
			client.http = &http.Client{
				Timeout: time.Second,
				CheckRedirect: func(*http.Request, []*http.Request) error {
					return http.ErrUseLastResponse
				},
			}

			_, err := client.GetText(context.Background(), server.URL)
			if !errors.Is(err, tt.want) {
				t.Errorf("GetText() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(20*time.Millisecond, nil)

	_, err := client.GetText(context.Background(), server.URL)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("GetText() error = %v, want ErrNetwork", err)
	}
}
