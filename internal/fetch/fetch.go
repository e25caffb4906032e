// Package fetch downloads candidate resumes from cloud storage links.
// It recognizes Google Drive, Dropbox, OneDrive/SharePoint, and GitHub
// share URLs and rewrites them to direct-download form before fetching;
// any other URL is treated as a direct link.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout is the timeout applied to each HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize caps the size of a downloaded resume at 50MB.
	DefaultMaxSize = 50 * 1024 * 1024

	// DefaultUserAgent mimics a desktop browser. Several cloud providers
	// serve interstitial pages or refuse the request outright when they
	// see a generic client UA.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Error describes a failure to download a document from a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Result holds a downloaded document and its metadata.
type Result struct {
	Content     []byte
	Filename    string
	ContentType string
	Provider    Provider
	SourceURL   string
}

// Downloader fetches resume documents from share links.
type Downloader struct {
	client  *http.Client
	maxSize int64
	logger  *zap.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) { dl.client.Timeout = d }
}

// WithMaxSize sets the maximum accepted document size in bytes.
func WithMaxSize(n int64) Option {
	return func(dl *Downloader) { dl.maxSize = n }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(dl *Downloader) { dl.client = c }
}

// NewDownloader returns a Downloader with default limits.
func NewDownloader(logger *zap.Logger, opts ...Option) *Downloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Downloader{
		client:  &http.Client{Timeout: DefaultTimeout},
		maxSize: DefaultMaxSize,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches the document behind a share link. The provider is
// detected from the URL host and the link is rewritten to its direct
// download form when the provider requires it.
func (d *Downloader) Download(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	provider := DetectProvider(rawURL)
	d.logger.Debug("downloading resume",
		zap.String("url", rawURL),
		zap.String("provider", string(provider)))

	switch provider {
	case ProviderGoogleDrive:
		return d.downloadGoogleDrive(ctx, rawURL)
	case ProviderDropbox:
		return d.fetch(ctx, dropboxDirectURL(rawURL), provider, rawURL)
	case ProviderOneDrive:
		return d.fetch(ctx, onedriveDirectURL(rawURL), provider, rawURL)
	case ProviderGitHub:
		return d.fetch(ctx, githubRawURL(rawURL), provider, rawURL)
	default:
		return d.downloadDirect(ctx, rawURL)
	}
}

// downloadDirect checks the advertised size before pulling the body so
// an oversized file is rejected without transferring it.
func (d *Downloader) downloadDirect(ctx context.Context, rawURL string) (*Result, error) {
	if head, err := d.do(ctx, http.MethodHead, rawURL); err == nil {
		head.Body.Close()
		if head.ContentLength > d.maxSize {
			return nil, &Error{
				URL:     rawURL,
				Message: fmt.Sprintf("document too large: %d bytes (limit %d)", head.ContentLength, d.maxSize),
			}
		}
	}
	return d.fetch(ctx, rawURL, ProviderDirect, rawURL)
}

// fetch performs the GET and assembles the Result.
func (d *Downloader) fetch(ctx context.Context, directURL string, provider Provider, sourceURL string) (*Result, error) {
	resp, err := d.do(ctx, http.MethodGet, directURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return d.result(resp, defaultFilename(provider, sourceURL), provider, sourceURL)
}

func (d *Downloader) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "building request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	return resp, nil
}

func (d *Downloader) result(resp *http.Response, fallbackName string, provider Provider, sourceURL string) (*Result, error) {
	content, err := d.readBody(resp)
	if err != nil {
		return nil, err
	}
	return &Result{
		Content:     content,
		Filename:    filenameFrom(resp, fallbackName),
		ContentType: resp.Header.Get("Content-Type"),
		Provider:    provider,
		SourceURL:   sourceURL,
	}, nil
}

// readBody reads at most maxSize bytes and fails if the body exceeds it.
func (d *Downloader) readBody(resp *http.Response) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		return nil, &Error{URL: resp.Request.URL.String(), Message: "reading body", Cause: err}
	}
	if int64(len(content)) > d.maxSize {
		return nil, &Error{
			URL:     resp.Request.URL.String(),
			Message: fmt.Sprintf("document too large (limit %d bytes)", d.maxSize),
		}
	}
	return content, nil
}

// filenameFrom extracts the document filename from the Content-Disposition
// header, then from the URL path, and finally falls back to the given name.
func filenameFrom(resp *http.Response, fallback string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := strings.TrimSpace(params["filename"]); name != "" {
				return name
			}
		}
	}
	if base := path.Base(resp.Request.URL.Path); strings.Contains(base, ".") {
		return base
	}
	return fallback
}

func defaultFilename(provider Provider, rawURL string) string {
	if provider == ProviderGoogleDrive {
		if id := DriveFileID(rawURL); id != "" {
			return "google_drive_" + id + ".pdf"
		}
	}
	return string(provider) + "_document.pdf"
}

func isHTML(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "text/html")
}
