package constant

import "time"

// Site endpoints and session parameters.
const (
	// SiteURL is the root address every relative link is resolved against.
	SiteURL = "https://zalukaj.com"

	// SessionCookieName is the cookie that carries the authenticated session.
	SessionCookieName = "PHPSESSID"

	// CookiesFileName is the file, inside the data directory, that holds the persisted cookie jar.
	CookiesFileName = "zalukaj.cookie"

	// RequestTimeout is the maximum wait time for a single response.
	RequestTimeout = 5 * time.Second
)
