// Package network builds the HTTP session used to talk to the site.
package network

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zalukaj-cli/zalukaj/constant"
	"github.com/zalukaj-cli/zalukaj/log"
)

// Options configures a session client.
type Options struct {
	// BaseURL is used for the Referer and Origin headers. Defaults to constant.SiteURL.
	BaseURL string

	// Timeout bounds every request. Defaults to constant.RequestTimeout.
	Timeout time.Duration

	// Jar holds session cookies. Nil disables cookie handling.
	Jar http.CookieJar

	// Fingerprint routes https traffic through a Chrome-like TLS handshake.
	Fingerprint bool

	// NoRedirects returns the first response instead of following Location.
	NoRedirects bool
}

// Headers returns the browser-like headers sent with every request.
func Headers(baseURL string) map[string]string {
	root := strings.TrimSuffix(baseURL, "/") + "/"
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language": "pl,en-US;q=0.9,en;q=0.8,fr;q=0.7",
		"User-Agent":      constant.UserAgent,
		"Referer":         root,
		"Origin":          root,
	}
}

// NewClient returns a resty client configured with the default headers,
// timeout, cookie jar and transport.
func NewClient(opts Options) *resty.Client {
	if opts.BaseURL == "" {
		opts.BaseURL = constant.SiteURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constant.RequestTimeout
	}

	client := resty.New()
	if opts.Fingerprint {
		client.SetTransport(NewFingerprintTransport(opts.Timeout))
	} else {
		client.SetTransport(newTransport(opts.Timeout))
	}

	client.SetTimeout(opts.Timeout)
	client.SetHeaders(Headers(opts.BaseURL))
	if opts.NoRedirects {
		client.SetRedirectPolicy(NoRedirects())
	} else {
		client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	}
	if opts.Jar != nil {
		client.SetCookieJar(opts.Jar)
	}

	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		log.WithFields(log.Fields{"method": r.Method, "url": r.URL}).Debug("request")
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		log.WithFields(log.Fields{
			"method":  r.Request.Method,
			"url":     r.Request.URL,
			"status":  r.StatusCode(),
			"elapsed": r.Time(),
		}).Debug("response")
		return nil
	})
	client.OnError(func(r *resty.Request, err error) {
		log.WithFields(log.Fields{"method": r.Method, "url": r.URL}).Warn(err)
	})

	return client
}

// NoRedirects makes a client return the first response instead of following Location.
func NoRedirects() resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	})
}

// newTransport initializes a pooled transport sized for a single host.
func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = timeout
	return t
}
