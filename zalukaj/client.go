// Package zalukaj scrapes the zalukaj.com catalog: account details, TV series,
// movies, search results and stream links.
//
// All calls are synchronous and perform a single request bounded by the
// configured timeout. Session cookies persist between runs.
package zalukaj

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/network"
	"github.com/zalukaj-cli/zalukaj/where"
)

// Site defaults.
const (
	URL               = constant.SiteURL
	SessionCookieName = constant.SessionCookieName
	CookiesFileName   = constant.CookiesFileName
	RequestTimeout    = constant.RequestTimeout
)

const overloadMarker = "Duze obciazenie!"

// Options configures a Client. Zero values fall back to the site defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	CookiesPath string
	Fingerprint bool
}

// Client holds one HTTP session with the site.
type Client struct {
	base string
	http *resty.Client
	// direct shares the jar with http but never follows redirects.
	direct *resty.Client
	jar    *network.Jar
}

// New builds a session and restores saved cookies when the cookie file exists.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.SiteURL
	}
	if opts.CookiesPath == "" {
		opts.CookiesPath = where.Cookies()
	}
	base := strings.TrimSuffix(opts.BaseURL, "/")

	jar, err := network.NewJar(base, opts.CookiesPath)
	if err != nil {
		return nil, newError("could not create cookie jar", err)
	}

	if err := jar.Load(); err != nil {
		log.Warnf("ignoring saved cookies: %s", err)
	}

	session := network.Options{
		BaseURL:     base,
		Timeout:     opts.Timeout,
		Jar:         jar,
		Fingerprint: opts.Fingerprint,
	}
	direct := session
	direct.NoRedirects = true

	return &Client{
		base:   base,
		jar:    jar,
		http:   network.NewClient(session),
		direct: network.NewClient(direct),
	}, nil
}

// BaseURL returns the site root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// Cookies returns the session cookies in Cookie header form, for external players.
func (c *Client) Cookies() string {
	return c.jar.Header()
}

// absolute prefixes relative links with the site root.
func (c *Client) absolute(link string) string {
	switch {
	case link == "":
		return c.base
	case strings.HasPrefix(link, "https://"), strings.HasPrefix(link, "http://"):
		return link
	case strings.HasPrefix(link, "//"):
		return "https:" + link
	case strings.HasPrefix(link, "/"):
		return c.base + link
	default:
		return c.base + "/" + link
	}
}

// get fetches and parses a page, following redirects.
func (c *Client) get(ctx context.Context, link string) (*goquery.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.absolute(link))
	if err != nil {
		return nil, newError("request failed", err)
	}
	return parse(resp)
}

// parse builds a document and runs problem detection on it.
func parse(resp *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, newError("could not parse page", err)
	}

	if err := detectProblems(resp.StatusCode(), doc); err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, newError(fmt.Sprintf("unexpected status %d", resp.StatusCode()), nil)
	}

	return doc, nil
}

// detectProblems recognizes the overload and suspicious-activity pages.
func detectProblems(status int, doc *goquery.Document) error {
	if status != http.StatusServiceUnavailable {
		return nil
	}

	if strings.Contains(doc.Text(), overloadMarker) {
		return newSuspiciousActivityError("Duże obciążenie serwisu. Spróbuj się zalogować.")
	}

	return newSuspiciousActivityError(strings.TrimSpace(doc.Find("title").First().Text()))
}
