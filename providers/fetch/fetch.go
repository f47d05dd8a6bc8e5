package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/onlyoneaman/aiwand/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "aiwand-fetch/1.0"
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
)

// Document is fetched source material ready to hand to a model: plain text
// or Markdown content plus the hyperlinks found in it.
type Document struct {
	// Source is the final location the content came from, after redirects.
	Source string

	// Content is the document text. HTML is converted to Markdown; other
	// content is passed through unchanged.
	Content string

	// Links are the absolute URLs found in the document, deduplicated and
	// sorted. Empty for non-HTML content.
	Links []string
}

// URL fetches a web page and returns its content as a Document.
//
// Partial URLs like "example.com" are normalised by prepending "https://".
// Up to ten redirects are followed and the body is capped at [MaxBodySize]
// bytes. HTML responses are converted to Markdown and their anchor links
// collected; other content types are returned verbatim.
func URL(ctx context.Context, rawURL string) (*Document, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return nil, fmt.Errorf("aiwand: fetch URL cannot be empty")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("aiwand: creating fetch request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := newHTTPClient().Do(req)
	if err != nil {
		if ctxWithTimeout.Err() != nil {
			return nil, fmt.Errorf("aiwand: fetch timed out or was canceled: %w", err)
		}
		return nil, fmt.Errorf("aiwand: fetching %s: %w", target, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aiwand: fetching %s: unexpected status %d %s", target, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("aiwand: reading fetch response: %w", err)
	}
	if len(body) == MaxBodySize {
		return nil, fmt.Errorf("aiwand: response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	finalURL := resp.Request.URL

	if !isHTML(resp.Header.Get("Content-Type"), body) {
		return &Document{Source: finalURL.String(), Content: string(body)}, nil
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return nil, fmt.Errorf("aiwand: converting HTML to Markdown: %w", err)
	}

	return &Document{
		Source:  finalURL.String(),
		Content: strings.TrimSpace(markdown),
		Links:   collectLinks(body, finalURL),
	}, nil
}

// File reads a local file and returns it as a Document. Files with an HTML
// extension are converted to Markdown; everything else is returned as-is.
func File(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("aiwand: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		markdown, convErr := htmltomarkdown.ConvertString(string(data))
		if convErr != nil {
			return nil, fmt.Errorf("aiwand: converting HTML to Markdown: %w", convErr)
		}
		return &Document{
			Source:  path,
			Content: strings.TrimSpace(markdown),
			Links:   collectLinks(data, nil),
		}, nil
	}

	return &Document{Source: path, Content: string(data)}, nil
}

// Resolve dispatches a link to URL or File based on its scheme. Anything
// without an http or https scheme is treated as a local file path.
func Resolve(ctx context.Context, link string) (*Document, error) {
	trimmed := strings.TrimSpace(link)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return URL(ctx, trimmed)
	}
	if _, err := os.Stat(trimmed); err == nil {
		return File(trimmed)
	}
	// Not a local file, assume a partial URL like "example.com/page".
	return URL(ctx, trimmed)
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (>10)")
			}
			return nil
		},
	}
}

// isHTML decides whether a response should go through Markdown conversion.
// The Content-Type header wins; a missing header falls back to sniffing.
func isHTML(contentType string, body []byte) bool {
	if contentType != "" {
		return strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml")
	}
	return strings.Contains(http.DetectContentType(body), "text/html")
}

// collectLinks walks the HTML tree and gathers anchor hrefs. Relative links
// are resolved against base when it is non-nil. Fragment-only and javascript
// links are skipped.
func collectLinks(body []byte, base *url.URL) []string {
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if link := normalizeLink(attr.Val, base); link != "" {
					seen[link] = struct{}{}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	if len(seen) == 0 {
		return nil
	}
	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

func normalizeLink(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	parsed.Fragment = ""
	return parsed.String()
}
