// Package fetch retrieves a live page and extracts the signals the
// classifier needs: domain, path, title and visible text.
package fetch

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html/charset"

	"github.com/clearfeed/mediascope/internal/utils"
)

const (
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

	// maxBodyBytes caps how much of a page we read; tone analysis does not
	// need more.
	maxBodyBytes = 1 << 20

	// maxTextRunes caps the extracted text handed to the classifier.
	maxTextRunes = 20000
)

// PageInfo is the extracted page content.
type PageInfo struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Client fetches pages with retries.
type Client struct {
	http *retryablehttp.Client
}

// NewClient builds a fetch client. Retries are quiet: transient fetch
// failures should not spam the log at info level.
func NewClient() *Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.Logger = nil
	return &Client{http: c}
}

// Page downloads rawURL and extracts its signals.
func (c *Client) Page(rawURL string) (*PageInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("fetch: not a fetchable URL: %q", rawURL)
	}

	req, err := retryablehttp.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch: %s returned %d", u.Hostname(), resp.StatusCode)
	}

	// Transcode legacy encodings to UTF-8 before parsing; plenty of news
	// sites still serve windows-1251 and friends.
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("fetch: charset %s: %w", u.Hostname(), err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", u.Hostname(), err)
	}

	info := &PageInfo{
		URL:    rawURL,
		Domain: strings.ToLower(u.Hostname()),
		Path:   u.Path,
		Title:  strings.TrimSpace(doc.Find("title").First().Text()),
		Text:   extractText(doc),
	}
	utils.Log.Debugf("fetched %s: title=%q, %d text runes", info.Domain, info.Title, len(info.Text))
	return info, nil
}

// extractText pulls the page's visible text, skipping script and style
// content.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	text := doc.Find("body").Text()
	// Collapse whitespace runs; the keyword counters don't care about
	// layout.
	fields := strings.Fields(text)
	text = strings.Join(fields, " ")
	runes := []rune(text)
	if len(runes) > maxTextRunes {
		text = string(runes[:maxTextRunes])
	}
	return text
}
