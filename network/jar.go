package network

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/zalukaj-cli/zalukaj/filesystem"
)

// storedCookie is the on-disk form of a cookie together with the url it was set for.
type storedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

func (s *storedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.Name,
		Value:    s.Value,
		Path:     s.Path,
		Domain:   s.Domain,
		Expires:  s.Expires,
		Secure:   s.Secure,
		HttpOnly: s.HttpOnly,
	}
}

// Jar is an http.CookieJar that can be saved to and restored from a file.
//
// Matching and expiry are delegated to net/http/cookiejar. The jar also keeps
// a copy of every accepted cookie because cookiejar never exposes attributes.
type Jar struct {
	mu      sync.Mutex
	site    *url.URL
	inner   *cookiejar.Jar
	tracked map[string]*storedCookie
	store   *gache.Cache[[]*storedCookie]
}

// NewJar returns an empty jar persisted at path. Get looks cookies up for site.
func NewJar(site, path string) (*Jar, error) {
	parsed, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("parse site url: %w", err)
	}

	jar := &Jar{
		site: parsed,
		store: gache.New[[]*storedCookie](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
	jar.reset()
	return jar, nil
}

func (j *Jar) reset() {
	j.inner = lo.Must(cookiejar.New(nil))
	j.tracked = make(map[string]*storedCookie)
}

func trackKey(u *url.URL, c *http.Cookie) string {
	return u.Hostname() + ";" + c.Path + ";" + c.Name
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.setCookies(u, cookies)
}

func (j *Jar) setCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	now := time.Now()
	origin := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}).String()
	for _, c := range cookies {
		k := trackKey(u, c)
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(j.tracked, k)
			continue
		}

		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		j.tracked[k] = &storedCookie{
			URL:      origin,
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Get returns the value of the named cookie as it would be sent to the site.
func (j *Jar) Get(name string) (string, bool) {
	for _, c := range j.Cookies(j.site) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Header renders the cookies for the site in Cookie header form.
func (j *Jar) Header() string {
	req := &http.Request{Header: make(http.Header)}
	for _, c := range j.Cookies(j.site) {
		req.AddCookie(c)
	}
	return req.Header.Get("Cookie")
}

// Len reports how many cookies the jar holds.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.tracked)
}

// Clear drops every cookie. The file is untouched until Save.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reset()
}

// Load replaces the jar contents with the saved cookies. A missing file leaves the jar empty.
func (j *Jar) Load() error {
	saved, _, err := j.store.Get()
	if err != nil {
		return fmt.Errorf("load cookies: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.reset()
	for _, s := range saved {
		u, err := url.Parse(s.URL)
		if err != nil {
			continue
		}
		j.setCookies(u, []*http.Cookie{s.cookie()})
	}
	return nil
}

// Save writes the current cookies to disk.
func (j *Jar) Save() error {
	j.mu.Lock()
	saved := lo.Values(j.tracked)
	j.mu.Unlock()

	if err := j.store.Set(saved); err != nil {
		return fmt.Errorf("save cookies: %w", err)
	}
	return nil
}
