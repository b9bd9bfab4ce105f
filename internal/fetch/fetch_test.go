package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.RespectRobots = false
	opts.RetryAttempts = 1
	opts.RetryDelay = time.Millisecond
	return opts
}

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	body, err := NewClient(testOptions()).FetchDocument(context.Background(), server.URL+"/register.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), body)
}

func TestFetchDocument_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := NewClient(testOptions()).FetchDocument(context.Background(), server.URL+"/missing.pdf")
	assert.Error(t, err)
}

func TestFetchDocument_RetriesTransientFailures(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	opts := testOptions()
	opts.RetryAttempts = 3

	body, err := NewClient(opts).FetchDocument(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 3, attempts)
}

func TestFetchDocument_BlockedByRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	opts := testOptions()
	opts.RespectRobots = true
	client := NewClient(opts)

	_, err := client.FetchDocument(context.Background(), server.URL+"/private/register.pdf")
	assert.ErrorContains(t, err, "robots.txt")

	_, err = client.FetchDocument(context.Background(), server.URL+"/public/register.pdf")
	assert.NoError(t, err)
}

func TestPDFLink(t *testing.T) {
	base, err := url.Parse("https://example.org/registers/index.html")
	require.NoError(t, err)

	tests := []struct {
		href     string
		expected string
		ok       bool
	}{
		{"2025-register.pdf", "https://example.org/registers/2025-register.pdf", true},
		{"/docs/register.PDF", "https://example.org/docs/register.PDF", true},
		{"https://other.example/reg.pdf", "https://other.example/reg.pdf", true},
		{"index.html", "", false},
		{"#top", "", false},
		{"mailto:admin@example.org", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			link, ok := pdfLink(base, tt.href)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, link)
		})
	}
}

func TestDiscoverRegisterLinks(t *testing.T) {
	page := `<html><body>
		<a href="registers/2025.pdf">2025 Register</a>
		<a href="/registers/2024.pdf">2024 Register</a>
		<a href="registers/2025.pdf">duplicate</a>
		<a href="about.html">About</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	links, err := NewClient(testOptions()).DiscoverRegisterLinks(context.Background(), server.URL+"/index.html")
	require.NoError(t, err)

	assert.Equal(t, []string{
		server.URL + "/registers/2025.pdf",
		server.URL + "/registers/2024.pdf",
	}, links)
}
